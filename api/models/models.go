// Package models tracks all api models for request and responses
package models

import (
	"github.com/aouyang1/imagegallery/render"
	"github.com/aouyang1/imagegallery/store"
)

type StateResponse struct {
	Folder           string `json:"folder"`
	Loaded           bool   `json:"loaded"`
	Total            int    `json:"total"`
	Index            int    `json:"index"`
	Current          string `json:"current"`
	Running          bool   `json:"running"`
	IntervalMS       int    `json:"interval_ms"`
	AllowedIntervals []int  `json:"allowed_intervals"`
	Revision         uint64 `json:"revision"`
}

type IntervalRequest struct {
	IntervalMS int `json:"interval_ms"`
}

type FolderRequest struct {
	Path string `json:"path"`
}

type PhotoListResponse struct {
	Photos []store.Photo `json:"photos"`
	Total  int           `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

type ImageInfoResponse struct {
	Path string `json:"path"`
	render.ImageInfo
}

type DirListResponse struct {
	Path   string   `json:"path"`
	Parent string   `json:"parent"`
	Dirs   []string `json:"dirs"`
}

type MessageResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
