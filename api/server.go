// Package api is the web host for the slideshow: the viewer page, a JSON control
// api and the image files themselves
package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aouyang1/imagegallery/api/models"
	"github.com/aouyang1/imagegallery/api/web/templates"
	"github.com/aouyang1/imagegallery/eventloop"
	"github.com/aouyang1/imagegallery/render"
	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/aouyang1/imagegallery/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

const (
	AppTitle     = "Image Gallery"
	AboutMessage = "This is an Image Gallery Application."
	DonateURL    = "https://www.tstp.xyz/donate"

	stripLimit      = 50
	shutdownTimeout = 5 * time.Second
)

//go:embed web/static/*
var webFiles embed.FS

// WebServer serves the viewer page and the control api for one slideshow.
type WebServer struct {
	router  *gin.Engine
	loop    *eventloop.Loop
	ctrl    *slideshow.Controller
	catalog *store.Catalog

	// OpenURL hands a link to the system browser.
	OpenURL func(url string) error

	allowedOrigins []string
}

// NewWebServer wires the routes. ctrl must only be touched through loop.
func NewWebServer(loop *eventloop.Loop, ctrl *slideshow.Controller, catalog *store.Catalog, openURL func(string) error, allowedOrigins []string) *WebServer {
	router := gin.New()
	router.Use(requestLogger(), recovery())

	ws := &WebServer{
		router:         router,
		loop:           loop,
		ctrl:           ctrl,
		catalog:        catalog,
		OpenURL:        openURL,
		allowedOrigins: allowedOrigins,
	}

	// Setup routes
	ws.setupRoutes()

	return ws
}

func (ws *WebServer) setupRoutes() {
	// Create filesystem for static files (strip "web/" prefix)
	staticFS, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		log.Fatalf("Failed to create static filesystem: %v", err)
	}

	// Serve the page's script and stylesheet from the embedded filesystem
	ws.router.StaticFS("/static", http.FS(staticFS))

	ws.router.GET("/", ws.handleIndex)
	ws.router.GET("/image/current", ws.handleCurrentImage)
	ws.router.GET("/about", ws.handleAbout)
	ws.router.GET("/donate", ws.handleDonateRedirect)

	// API routes
	ws.router.GET("/api/state", ws.handleGetState)
	ws.router.POST("/api/next", ws.handleNext)
	ws.router.POST("/api/previous", ws.handlePrevious)
	ws.router.POST("/api/toggle", ws.handleToggle)
	ws.router.PUT("/api/interval", ws.handleSetInterval)
	ws.router.POST("/api/folder", ws.handleLoadFolder)
	ws.router.GET("/api/image", ws.handleImageInfo)
	ws.router.GET("/api/photos", ws.handleListPhotos)
	ws.router.GET("/api/photos/:order/image", ws.handlePhotoImage)
	ws.router.GET("/api/dirs", ws.handleListDirs)
	ws.router.POST("/api/donate", ws.handleOpenDonate)
}

// Handler returns the router wrapped with the CORS policy.
func (ws *WebServer) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: ws.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(ws.router)
}

// Start serves until ctx is done and then shuts down gracefully.
func (ws *WebServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: ws.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start web server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	slog.Info("web server stopped")
	return nil
}

// LoadFolder loads path into the slideshow and rebuilds the catalog in the same event.
func (ws *WebServer) LoadFolder(ctx context.Context, path string) (slideshow.Snapshot, error) {
	var snap slideshow.Snapshot
	err := ws.loop.Do(ctx, func() error {
		if err := ws.ctrl.LoadFolder(path); err != nil {
			return err
		}
		if err := ws.catalog.Replace(ws.ctrl.Images()); err != nil {
			return fmt.Errorf("failed to rebuild catalog: %w", err)
		}
		snap = ws.ctrl.Snapshot()
		return nil
	})
	return snap, err
}

// SetInterval changes the auto-advance interval on the loop.
func (ws *WebServer) SetInterval(ctx context.Context, ms int) (slideshow.Snapshot, error) {
	return ws.update(ctx, func() error { return ws.ctrl.SetInterval(ms) })
}

func (ws *WebServer) snapshot(ctx context.Context) (slideshow.Snapshot, error) {
	return ws.update(ctx, func() error { return nil })
}

// update runs fn on the loop and returns the state it left behind.
func (ws *WebServer) update(ctx context.Context, fn func() error) (slideshow.Snapshot, error) {
	var snap slideshow.Snapshot
	err := ws.loop.Do(ctx, func() error {
		if err := fn(); err != nil {
			return err
		}
		snap = ws.ctrl.Snapshot()
		return nil
	})
	return snap, err
}

func stateResponse(s slideshow.Snapshot) models.StateResponse {
	return models.StateResponse{
		Folder:           s.Folder,
		Loaded:           s.Loaded,
		Total:            s.Total,
		Index:            s.Index,
		Current:          s.Current,
		Running:          s.Running,
		IntervalMS:       s.IntervalMS,
		AllowedIntervals: slideshow.AllowedIntervals,
		Revision:         s.Revision,
	}
}

// respondError reports err to the caller as a notification; nothing here is fatal.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, slideshow.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, slideshow.ErrIO):
		status = http.StatusBadRequest
	case errors.Is(err, slideshow.ErrRender):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrPhotoNotFound):
		status = http.StatusNotFound
	case errors.Is(err, eventloop.ErrStopped):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		slog.Warn("request rejected", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

func (ws *WebServer) handleIndex(c *gin.Context) {
	snap, err := ws.snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	photos, err := ws.catalog.GetPhotos(stripLimit, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	page := templates.Page{
		Title:     AppTitle,
		State:     snap,
		Intervals: slideshow.AllowedIntervals,
		Photos:    photos,
		About:     AboutMessage,
		DonateURL: DonateURL,
		Notice:    c.Query("notice"),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := templates.Index(page).Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render index", "error", err)
	}
}

func (ws *WebServer) handleGetState(c *gin.Context) {
	snap, err := ws.snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) handleNext(c *gin.Context) {
	snap, err := ws.update(c.Request.Context(), func() error {
		ws.ctrl.Next()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) handlePrevious(c *gin.Context) {
	snap, err := ws.update(c.Request.Context(), func() error {
		ws.ctrl.Previous()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) handleToggle(c *gin.Context) {
	snap, err := ws.update(c.Request.Context(), func() error {
		ws.ctrl.ToggleRunning()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) handleSetInterval(c *gin.Context) {
	var req models.IntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	snap, err := ws.SetInterval(c.Request.Context(), req.IntervalMS)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) handleLoadFolder(c *gin.Context) {
	var req models.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	snap, err := ws.LoadFolder(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateResponse(snap))
}

func (ws *WebServer) currentPath(ctx context.Context) (string, bool, error) {
	var (
		path string
		ok   bool
	)
	err := ws.loop.Do(ctx, func() error {
		path, ok = ws.ctrl.Current()
		return nil
	})
	return path, ok, err
}

func (ws *WebServer) handleCurrentImage(c *gin.Context) {
	path, ok, err := ws.currentPath(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "No image selected"})
		return
	}
	ws.serveImage(c, path)
}

func (ws *WebServer) handleImageInfo(c *gin.Context) {
	path, ok, err := ws.currentPath(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "No image selected"})
		return
	}

	info, err := render.Probe(path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ImageInfoResponse{Path: path, ImageInfo: *info})
}

func (ws *WebServer) handleListPhotos(c *gin.Context) {
	// Parse query parameters
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid page parameter"})
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	// Get total count
	total, err := ws.catalog.GetPhotoCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Database error: %v", err)})
		return
	}

	// Calculate offset
	offset := (page - 1) * limit

	photos, err := ws.catalog.GetPhotos(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Database error: %v", err)})
		return
	}
	if photos == nil {
		photos = []store.Photo{}
	}

	c.JSON(http.StatusOK, models.PhotoListResponse{
		Photos: photos,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func (ws *WebServer) handlePhotoImage(c *gin.Context) {
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid order parameter"})
		return
	}

	photo, err := ws.catalog.GetPhoto(order)
	if err != nil {
		respondError(c, err)
		return
	}
	ws.serveImage(c, photo.Path)
}

// serveImage streams path after checking it decodes, so a broken file surfaces as a
// RenderError notification instead of a broken image.
func (ws *WebServer) serveImage(c *gin.Context, path string) {
	if _, err := render.Probe(path); err != nil {
		respondError(c, err)
		return
	}
	c.File(path)
}

func (ws *WebServer) handleAbout(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Title: "About", Message: AboutMessage})
}

func (ws *WebServer) handleDonateRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, DonateURL)
}

func (ws *WebServer) handleOpenDonate(c *gin.Context) {
	if err := ws.OpenURL(DonateURL); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Failed to open donate page: %v", err)})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Title: "Donate", Message: "Opened " + DonateURL})
}
