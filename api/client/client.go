// Package client drives a running gallery through its control api
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aouyang1/imagegallery/api/models"
)

const defaultTimeout = 10 * time.Second

type GalleryClient struct {
	baseURL string
	client  *http.Client
}

func NewGalleryClient(baseURL string) *GalleryClient {
	return &GalleryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (gc *GalleryClient) State(ctx context.Context) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodGet, "/api/state", nil)
}

func (gc *GalleryClient) Next(ctx context.Context) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodPost, "/api/next", nil)
}

func (gc *GalleryClient) Previous(ctx context.Context) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodPost, "/api/previous", nil)
}

func (gc *GalleryClient) Toggle(ctx context.Context) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodPost, "/api/toggle", nil)
}

func (gc *GalleryClient) SetInterval(ctx context.Context, ms int) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodPut, "/api/interval", models.IntervalRequest{IntervalMS: ms})
}

// LoadFolder asks the gallery to load path; an empty path means the gallery's
// working directory.
func (gc *GalleryClient) LoadFolder(ctx context.Context, path string) (*models.StateResponse, error) {
	return gc.stateRequest(ctx, http.MethodPost, "/api/folder", models.FolderRequest{Path: path})
}

// GetPhotos retrieves every image of the loaded folder, page by page.
func (gc *GalleryClient) GetPhotos(ctx context.Context) (*models.PhotoListResponse, error) {
	all := &models.PhotoListResponse{Page: 1}
	page := 1
	limit := 100

	for {
		query := url.Values{}
		query.Set("page", fmt.Sprint(page))
		query.Set("limit", fmt.Sprint(limit))

		var listResp models.PhotoListResponse
		if err := gc.do(ctx, http.MethodGet, "/api/photos?"+query.Encode(), nil, &listResp); err != nil {
			return nil, err
		}

		all.Photos = append(all.Photos, listResp.Photos...)
		all.Total = listResp.Total

		// Check if we've fetched all photos
		if len(listResp.Photos) < limit || len(all.Photos) >= listResp.Total {
			break
		}

		page++
	}

	all.Limit = len(all.Photos)
	return all, nil
}

func (gc *GalleryClient) stateRequest(ctx context.Context, method, path string, body any) (*models.StateResponse, error) {
	var state models.StateResponse
	if err := gc.do(ctx, method, path, body, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (gc *GalleryClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, gc.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := gc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	slog.Debug("gallery request complete", "method", method, "path", path)
	return nil
}
