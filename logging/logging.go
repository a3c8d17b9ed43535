package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	debugLogger *logrus.Logger
	logFile     *os.File
	mu          sync.Mutex
	isSetup     bool
)

// SetupLogger initializes the debug logger with the specified log file
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger = newLogger(logFile)
	debugLogger.Infof("--- dupsweep debug log started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// SetupWriter routes the debug log to w. Used by tests and by callers that
// already own an output stream.
func SetupWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	debugLogger = newLogger(w)
	isSetup = true
}

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger
}

// CloseLogger closes the log file
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Infof("--- dupsweep debug log closed at %s ---", time.Now().Format(time.RFC3339))
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	debugLogger = nil
	isSetup = false
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Infof(format, args...)
	}
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Debugf(format, args...)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Errorf(format, args...)
	}
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Warnf(format, args...)
	}
}

// LogImageProcessed logs the outcome for one image
func LogImageProcessed(path string, classification string, err error) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger == nil {
		return
	}
	if err != nil {
		debugLogger.WithFields(logrus.Fields{"path": path}).Warnf("FAILED: %v", err)
		return
	}
	debugLogger.WithFields(logrus.Fields{
		"path":           path,
		"classification": classification,
	}).Info("PROCESSED")
}
