package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"dupsweep/config"
	"dupsweep/database"
	"dupsweep/imageprocessor"
	"dupsweep/logging"
	"dupsweep/report"
	"dupsweep/scanner"
	"dupsweep/signalhandler"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupsweep <path>",
		Short: "Find duplicate and similar images in a folder",
		Long: `dupsweep hashes every image in a folder with a perceptual hash and
classifies each one as a duplicate, a similar image or unique.

With --delete the smaller file of each matched pair is removed (on equal
size, the newer one). Deletion is permanent. With more than one worker the
surviving file of a cluster depends on scheduling order, so use --workers 1
when repeated runs must keep the same files.`,
		Args:          usageOnError(cobra.ExactArgs(1)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runScan,
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.ErrOrStderr(), c.UsageString())
		return err
	})

	defaults := config.Default()
	flags := cmd.Flags()
	flags.BoolP("delete", "d", false, "Delete the inferior file of each duplicate or similar pair")
	flags.IntP("threshold", "t", defaults.Threshold, "Maximum differing bits for two images to count as similar")
	flags.IntP("workers", "w", defaults.Workers, "Number of hashing workers")
	flags.String("hash", defaults.HashAlgorithm, "Perceptual hash: difference, average or perception")
	flags.String("config", "", "YAML config file")
	flags.String("database", "", "Record the run in this sqlite journal")
	flags.Bool("debug", false, "Write a debug log")
	flags.String("logfile", defaults.LogFile, "Debug log path")
	flags.Bool("bar", false, "Show a progress bar instead of one line per image")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("auto-orient", false, "Apply EXIF orientation before hashing")
	return cmd
}

// usageOnError prints the usage text to stderr when argument validation fails
func usageOnError(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
			return err
		}
		return nil
	}
}

// execute runs the command line and returns the process exit status
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	folderPath := args[0]

	if cfg.Debug {
		if err := logging.SetupLogger(cfg.LogFile); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to setup logging: %v\n", err)
		}
		defer logging.CloseLogger()
	}

	ctx, cancel := signalhandler.SetupHandler(context.Background())
	defer cancel()

	registry := imageprocessor.NewImageLoaderRegistry(imageprocessor.RegistryOptions{
		AutoOrient: cfg.AutoOrient,
	})
	defer registry.Close()

	var reporter scanner.Reporter
	if cfg.ProgressBar {
		reporter = report.NewBarReporter(cmd.OutOrStdout(), cfg.NoColor)
	} else {
		reporter = report.NewLineReporter(cmd.OutOrStdout(), cfg.NoColor)
	}

	options := scanner.ScanOptions{
		FolderPath:    folderPath,
		Workers:       cfg.Workers,
		Threshold:     cfg.Threshold,
		DeleteEnabled: cfg.Delete,
		Hasher:        imageprocessor.NewHasher(registry, cfg.Algorithm()),
		Metadata:      scanner.OSMetadata{},
		Reporter:      reporter,
	}

	var journal *database.Journal
	if cfg.Database != "" {
		db, err := database.InitDatabase(cfg.Database)
		if err != nil {
			return fmt.Errorf("cannot open journal %s: %w", cfg.Database, err)
		}
		defer db.Close()

		journal, err = database.BeginRun(db, database.RunInfo{
			Root:          folderPath,
			DeleteEnabled: cfg.Delete,
			Threshold:     cfg.Threshold,
		})
		if err != nil {
			return err
		}
		options.Journal = journal
	}

	startTime := time.Now()
	summary, err := scanner.Run(ctx, options)
	if journal != nil {
		if ferr := journal.FinishRun(summary); ferr != nil {
			logging.LogError("%v", ferr)
		}
	}
	if err != nil {
		return err
	}

	logging.LogInfo("Run finished in %v (%d files, %d skipped)", time.Since(startTime), summary.Total, summary.Skipped)
	return nil
}
