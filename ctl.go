package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/aouyang1/imagegallery/api/client"
	"github.com/aouyang1/imagegallery/api/models"
)

const ctlUsage = `usage: imagegallery ctl [-server URL] <command> [arg]

commands:
  state              print the slideshow state
  next | previous    move one image
  toggle             pause or resume
  interval <ms>      set the advance interval
  folder [path]      load a folder (default: the gallery's working directory)
  photos             list the images of the loaded folder
`

// runCtl drives a running gallery from the command line and returns the exit code.
func runCtl(args []string) int {
	fs := flag.NewFlagSet("ctl", flag.ContinueOnError)
	server := fs.String("server", envOr("GALLERY_SERVER", "http://127.0.0.1:8080"), "Gallery base URL")
	fs.Usage = func() { fmt.Fprint(fs.Output(), ctlUsage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	gc := client.NewGalleryClient(*server)
	ctx := context.Background()

	var (
		state *models.StateResponse
		err   error
	)
	switch cmd := fs.Arg(0); cmd {
	case "state":
		state, err = gc.State(ctx)
	case "next":
		state, err = gc.Next(ctx)
	case "previous", "prev":
		state, err = gc.Previous(ctx)
	case "toggle":
		state, err = gc.Toggle(ctx)
	case "interval":
		ms, convErr := strconv.Atoi(fs.Arg(1))
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "interval needs a number of milliseconds, got %q\n", fs.Arg(1))
			return 2
		}
		state, err = gc.SetInterval(ctx, ms)
	case "folder":
		state, err = gc.LoadFolder(ctx, fs.Arg(1))
	case "photos":
		photos, listErr := gc.GetPhotos(ctx)
		if listErr != nil {
			fmt.Fprintln(os.Stderr, listErr)
			return 1
		}
		for _, p := range photos.Photos {
			fmt.Printf("%4d  %s\n", p.Order, p.Path)
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printState(state)
	return 0
}

func printState(s *models.StateResponse) {
	status := "paused"
	if s.Running {
		status = "running"
	}
	fmt.Printf("folder:   %s\n", s.Folder)
	if s.Total == 0 {
		fmt.Println("image:    none")
	} else {
		fmt.Printf("image:    %d/%d %s\n", s.Index+1, s.Total, s.Current)
	}
	fmt.Printf("status:   %s every %dms\n", status, s.IntervalMS)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
