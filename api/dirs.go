package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aouyang1/imagegallery/api/models"
	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/gin-gonic/gin"
)

// listDirs backs the folder picker: the subdirectories of path, hidden ones skipped.
func listDirs(path string) (*models.DirListResponse, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: resolving working directory: %w", slideshow.ErrIO, err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", slideshow.ErrIO, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", slideshow.ErrIO, abs, err)
	}

	resp := &models.DirListResponse{
		Path: abs,
		Dirs: []string{},
	}
	if parent := filepath.Dir(abs); parent != abs {
		resp.Parent = parent
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name[0] == '.' {
			continue
		}
		resp.Dirs = append(resp.Dirs, filepath.Join(abs, name))
	}
	return resp, nil
}

func (ws *WebServer) handleListDirs(c *gin.Context) {
	listing, err := listDirs(c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}
