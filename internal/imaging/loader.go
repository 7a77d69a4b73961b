package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
)

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Decoding is the expensive part of every tool call, and clients usually issue
// several operations (hash, dither, convert) against the same file. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// copy without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines. The cached
// image.Image values are never modified; LoadBuffer hands out fresh Buffer
// copies, so callers may mutate what they receive.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	buf, mode, err := cache.LoadBuffer("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gray, err := colorspace.Convert(buf, mode, "L")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are those registered with the image package: PNG, JPEG
// and BMP through bild's imgio, plus GIF.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadBuffer loads path and returns its pixels as a new Buffer together with
// the color mode name the buffer is encoded in (see FromImage).
func (c *ImageCache) LoadBuffer(path string) (*Buffer, string, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, "", err
	}
	buf, mode := FromImage(img)
	return buf, mode, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected file format: "png", "jpeg", "gif", "bmp" or
	// "unknown". Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// Mode is the color mode the pixels are loaded as ("L", "U", "RGB" or "RGBA").
	Mode string `json:"mode"`

	// Channels is the number of channels in Mode.
	Channels int `json:"channels"`

	// HasAlpha indicates whether the loaded buffer carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	buf, mode, err := cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	}

	return &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Format:        format,
		Mode:          mode,
		Channels:      buf.Channels,
		HasAlpha:      buf.Channels == 4,
		FileSizeBytes: stat.Size(),
	}, nil
}
