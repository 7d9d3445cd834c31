// Package templates renders the viewer page.
package templates

import (
	"fmt"

	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/aouyang1/imagegallery/store"
)

const (
	PlaceholderNotLoaded = "No Images Loaded"
	PlaceholderEmpty     = "No Images Found"
)

// Page is everything the viewer page shows.
type Page struct {
	Title     string
	State     slideshow.Snapshot
	Intervals []int
	Photos    []store.Photo
	About     string
	DonateURL string
	Notice    string
}

// Placeholder is the text shown instead of an image, or "" when an image is selected.
func (p Page) Placeholder() string {
	switch {
	case !p.State.Loaded:
		return PlaceholderNotLoaded
	case p.State.Total == 0:
		return PlaceholderEmpty
	default:
		return ""
	}
}

func toggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Play"
}

func position(s slideshow.Snapshot) string {
	if s.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.Index+1, s.Total)
}
