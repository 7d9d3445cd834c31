package slideshow

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aouyang1/imagegallery/util"
)

// ScanFolder lists the image files directly inside dir. Files are grouped by
// extension in util.ImageExt order and sorted by name, ignoring case, within
// each group. Hidden files and subdirectories are skipped.
func ScanFolder(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrIO, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, dir, err)
	}

	groups := make(map[string][]string, len(util.ImageExt))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if util.IsHidden(name) || !util.IsImage(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		groups[ext] = append(groups[ext], name)
	}

	images := make([]string, 0, len(entries))
	for _, ext := range util.ImageExt {
		names := groups[ext]
		slices.SortStableFunc(names, compareNames)
		for _, name := range names {
			images = append(images, filepath.Join(dir, name))
		}
	}
	return images, nil
}

func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
