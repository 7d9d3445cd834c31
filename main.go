package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/imagegallery/api"
	"github.com/aouyang1/imagegallery/browser"
	"github.com/aouyang1/imagegallery/config"
	"github.com/aouyang1/imagegallery/eventloop"
	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/aouyang1/imagegallery/store"
	"github.com/gin-gonic/gin"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "ctl" {
		os.Exit(runCtl(os.Args[2:]))
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, err := store.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to initialize catalog: %v", err)
	}
	defer catalog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.New()
	var ctrl *slideshow.Controller
	ticker := eventloop.NewTicker(loop, func() { ctrl.Tick() })
	ctrl = slideshow.NewController(ticker)
	ctrl.OnChange(func(s slideshow.Snapshot) {
		slog.Debug("showing image", "index", s.Index, "total", s.Total, "path", s.Current)
	})
	defer ticker.Stop()

	go loop.Run(ctx)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://" + cfg.Addr}
	}
	webServer := api.NewWebServer(loop, ctrl, catalog, browser.Open, origins)

	// startup failures are reported and the viewer still comes up
	if _, err := webServer.SetInterval(ctx, cfg.IntervalMS); err != nil {
		slog.Warn("unable to apply configured interval", "interval_ms", cfg.IntervalMS, "error", err)
	}
	if _, err := webServer.LoadFolder(ctx, cfg.RootPath); err != nil {
		slog.Warn("unable to load initial folder", "path", cfg.RootPath, "error", err)
	}

	if cfg.OpenBrowser {
		viewerURL := "http://" + cfg.Addr
		if err := browser.Open(viewerURL); err != nil {
			slog.Warn("unable to open browser", "url", viewerURL, "error", err)
		}
	}

	if err := webServer.Start(ctx, cfg.Addr); err != nil {
		slog.Error("web server failed", "error", err)
		os.Exit(1)
	}
}
