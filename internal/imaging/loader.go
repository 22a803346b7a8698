package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnsupportedFormat is returned when image bytes do not match any
// registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageInfo contains metadata about an image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp". Detection is based on file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the color model carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the size of the encoded image in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// Inspect reads the image header from data and returns its metadata without
// decoding the pixels.
//
// Returns ErrUnsupportedFormat (wrapped) when no registered decoder
// recognizes the data, and a decode error when the header is corrupt.
func Inspect(data []byte) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	hasAlpha, colorDepth := describeModel(cfg.ColorModel)

	return &ImageInfo{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  int64(len(data)),
	}, nil
}

// ReadFile reads an image file into memory and inspects it.
func ReadFile(path string) ([]byte, *ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	info, err := Inspect(data)
	if err != nil {
		return nil, nil, err
	}
	return data, info, nil
}

// Decode decodes image bytes with the registered decoders.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// It backs region OCR: a client that recognizes several regions of the same
// image pays for decoding once. Cached images remain in memory until Evict or
// Clear is called.
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

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
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

// LoadImageInfo reads the file at path and returns its metadata.
func LoadImageInfo(path string) (*ImageInfo, error) {
	_, info, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image file.
func GetDimensions(path string) (*DimensionsResult, error) {
	info, err := LoadImageInfo(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  info.Width,
		Height: info.Height,
	}, nil
}

// describeModel reports alpha presence and channel depth for a color model.
func describeModel(m color.Model) (hasAlpha bool, colorDepth string) {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true, "8-bit"
			}
		}
		return false, "8-bit"
	}

	switch m {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		return true, "8-bit"
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		return true, "16-bit"
	case color.Gray16Model:
		return false, "16-bit"
	}
	return false, "8-bit"
}
