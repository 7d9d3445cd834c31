// Package config reads the gallery settings from the environment and command-line flags.
// Flags win over environment variables.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/imagegallery/slideshow"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultLogLevel = "info"
)

type Config struct {
	// RootPath is the folder loaded at startup; empty means the working directory.
	RootPath       string
	Addr           string
	IntervalMS     int
	LogLevel       slog.Level
	OpenBrowser    bool
	AllowedOrigins []string
}

// Load builds a Config from GALLERY_* environment variables and then args.
func Load(args []string) (*Config, error) {
	intervalMS := slideshow.DefaultIntervalMS
	if v := os.Getenv("GALLERY_INTERVAL_MS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("unable to parse GALLERY_INTERVAL_MS %q: %w", v, err)
		}
		intervalMS = parsed
	}

	openBrowser := false
	if v := os.Getenv("GALLERY_OPEN_BROWSER"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("unable to parse GALLERY_OPEN_BROWSER %q: %w", v, err)
		}
		openBrowser = parsed
	}

	fs := flag.NewFlagSet("imagegallery", flag.ContinueOnError)
	rootPath := fs.String("dir", os.Getenv("GALLERY_ROOT_PATH"), "Folder to load at startup. Can also be given as a positional argument.")
	addr := fs.String("addr", envOr("GALLERY_ADDR", defaultAddr), "Address the viewer listens on")
	interval := fs.Int("interval", intervalMS, "Auto-advance interval in milliseconds (1000, 2000, 3000, 5000 or 10000)")
	logLevel := fs.String("log-level", envOr("GALLERY_LOG_LEVEL", defaultLogLevel), "Log level: debug, info, warn or error")
	open := fs.Bool("open", openBrowser, "Open the viewer in the system browser")
	origins := fs.String("allowed-origins", os.Getenv("GALLERY_ALLOWED_ORIGINS"), "Comma separated origins allowed to call the control API")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		RootPath:    *rootPath,
		Addr:        *addr,
		IntervalMS:  *interval,
		OpenBrowser: *open,
	}

	dirSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dir" {
			dirSet = true
		}
	})
	if !dirSet && fs.NArg() > 0 {
		cfg.RootPath = fs.Arg(0)
	}

	if !slideshow.IsAllowedInterval(cfg.IntervalMS) {
		return nil, fmt.Errorf("interval %dms must be one of %v", cfg.IntervalMS, slideshow.AllowedIntervals)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	for _, origin := range strings.Split(*origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
