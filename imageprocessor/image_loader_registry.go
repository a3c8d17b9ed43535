package imageprocessor

import (
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"dupsweep/logging"
)

// fallbackLoaders are appended to every chain. Optional backends register
// themselves here from init functions guarded by build tags.
var fallbackLoaders []func(autoOrient bool) ImageLoader

// RegistryOptions configures which loaders are registered
type RegistryOptions struct {
	AutoOrient bool
	// DisableExiftool skips the RAW preview loader even when exiftool is installed
	DisableExiftool bool
}

// ImageLoaderRegistry maintains a registry of image loaders
type ImageLoaderRegistry struct {
	loaders       map[string]ImageLoader
	defaultLoader ImageLoader
	closers       []io.Closer
	mutex         sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry(options RegistryOptions) *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	var fallbacks []ImageLoader
	for _, newLoader := range fallbackLoaders {
		l := newLoader(options.AutoOrient)
		fallbacks = append(fallbacks, l)
		logging.LogInfo("Registered fallback loader %s", l.Name())
	}

	standard := NewStandardImageLoader(options.AutoOrient)
	registry.defaultLoader = chain(append([]ImageLoader{standard}, fallbacks...))

	registry.registerRawLoaders(options, standard, fallbacks)

	return registry
}

func chain(loaders []ImageLoader) ImageLoader {
	if len(loaders) == 1 {
		return loaders[0]
	}
	return &ChainLoader{Loaders: loaders}
}

// registerRawLoaders registers loaders for camera RAW formats. DNG and several
// other RAW files are TIFF containers, so the standard loader stays in the chain.
func (r *ImageLoaderRegistry) registerRawLoaders(options RegistryOptions, standard ImageLoader, fallbacks []ImageLoader) {
	loaders := []ImageLoader{}
	if !options.DisableExiftool && checkExiftoolCommandAvailable() {
		preview := NewRawPreviewLoader(options.AutoOrient)
		r.closers = append(r.closers, preview)
		loaders = append(loaders, preview)
		logging.LogInfo("Registered exiftool preview loader for RAW formats")
	} else {
		logging.LogInfo("exiftool not available, RAW files use the standard loader only")
	}
	loaders = append(loaders, standard)
	loaders = append(loaders, fallbacks...)

	rawLoader := chain(loaders)
	for _, ext := range RawExtensions() {
		r.RegisterLoader(ext, rawLoader)
	}
}

// RegisterLoader registers a new loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ext = strings.ToLower(ext)
	r.loaders[ext] = loader
}

// GetLoader returns the appropriate loader for the given path
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	if loader, ok := r.loaders[ext]; ok {
		return loader
	}

	return r.defaultLoader
}

// LoadImage loads an image using the appropriate registered loader
func (r *ImageLoaderRegistry) LoadImage(path string) (image.Image, error) {
	return r.GetLoader(path).LoadImage(path)
}

// Close releases resources held by loaders
func (r *ImageLoaderRegistry) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}
