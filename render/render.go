// Package render checks that an image can be displayed before the host serves it.
package render

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"time"

	"github.com/aouyang1/imagegallery/slideshow"
	_ "golang.org/x/image/bmp" // Register BMP decoder
)

// ImageInfo holds what the viewer shows next to an image.
type ImageInfo struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Format  string    `json:"format"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Probe reads just enough of path to learn its format and dimensions. Any failure is
// reported as slideshow.ErrRender.
func Probe(path string) (*ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", slideshow.ErrRender, path, err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", slideshow.ErrRender, path, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: getting file stats: %w", slideshow.ErrRender, err)
	}

	return &ImageInfo{
		Width:   config.Width,
		Height:  config.Height,
		Format:  format,
		Size:    fileInfo.Size(),
		ModTime: fileInfo.ModTime(),
	}, nil
}
