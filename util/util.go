// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ImageExt lists the lower-cased image extensions the slideshow picks up, in the
// order a folder scan groups them.
var ImageExt = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}

// SupportedExt is ImageExt as a set.
var SupportedExt = mapset.NewSet(ImageExt...)

// IsImage reports whether name has a supported image extension, ignoring case.
func IsImage(name string) bool {
	return SupportedExt.Contains(strings.ToLower(filepath.Ext(name)))
}

// IsHidden reports whether name is a dot file.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
