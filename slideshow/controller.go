// Package slideshow holds the ordered image list, the current selection and the
// auto-advance settings, and the operations that move through them.
package slideshow

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"
)

// NoSelection is the current index while the image list is empty.
const NoSelection = -1

// DefaultIntervalMS is the auto-advance interval a new controller starts with.
const DefaultIntervalMS = 3000

// AllowedIntervals are the auto-advance intervals, in milliseconds, SetInterval accepts.
var AllowedIntervals = []int{1000, 2000, 3000, 5000, 10000}

// IsAllowedInterval reports whether ms is one of AllowedIntervals.
func IsAllowedInterval(ms int) bool {
	return slices.Contains(AllowedIntervals, ms)
}

// Scheduler drives the recurring auto-advance. Every firing must end up as a single
// call to Controller.Tick on the same goroutine that calls the other controller methods.
type Scheduler interface {
	Start(interval time.Duration)
	Stop()
	Reschedule(interval time.Duration)
}

// State is the whole slideshow state.
type State struct {
	Images       []string
	CurrentIndex int
	Running      bool
	IntervalMS   int
}

// Snapshot is a read-only view of the controller for the presentation layer.
type Snapshot struct {
	Folder     string
	Loaded     bool
	Total      int
	Index      int
	Current    string
	Running    bool
	IntervalMS int
	// Revision increases every time the selection or the image list changes.
	Revision   uint64
}

// Controller owns the slideshow State. It is not safe for concurrent use; the host
// serialises all calls onto one event goroutine.
type Controller struct {
	state     State
	folder    string
	loaded    bool
	revision  uint64
	scheduler Scheduler
	onChange  func(Snapshot)
}

// NewController returns a paused controller with no images and the default interval.
func NewController(scheduler Scheduler) *Controller {
	if scheduler == nil {
		scheduler = nopScheduler{}
	}
	return &Controller{
		state: State{
			CurrentIndex: NoSelection,
			IntervalMS:   DefaultIntervalMS,
		},
		scheduler: scheduler,
	}
}

// OnChange registers fn to be called after every selection change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.onChange = fn
}

// LoadFolder replaces the image list with the images found in path and selects the
// first one. An empty path means the current working directory. The running state
// is left as is.
func (c *Controller) LoadFolder(path string) error {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%w: resolving working directory: %w", ErrIO, err)
		}
		path = wd
	}

	images, err := ScanFolder(path)
	if err != nil {
		return err
	}

	c.state.Images = images
	c.state.CurrentIndex = NoSelection
	if len(images) > 0 {
		c.state.CurrentIndex = 0
	}
	c.folder = path
	c.loaded = true

	slog.Info("loaded images", "folder", path, "count", len(images))
	c.changed()
	return nil
}

// Next selects the following image, wrapping to the first. It does nothing when
// there are no images.
func (c *Controller) Next() {
	c.navigate(1)
}

// Previous selects the preceding image, wrapping to the last. It does nothing when
// there are no images.
func (c *Controller) Previous() {
	c.navigate(-1)
}

// Tick is the scheduler callback; one tick advances one image.
func (c *Controller) Tick() {
	c.Next()
}

func (c *Controller) navigate(delta int) {
	n := len(c.state.Images)
	if n == 0 {
		return
	}
	c.state.CurrentIndex = (c.state.CurrentIndex + delta%n + n) % n
	c.changed()
}

// ToggleRunning switches between paused and running and returns the new state.
func (c *Controller) ToggleRunning() bool {
	c.state.Running = !c.state.Running
	if c.state.Running {
		c.scheduler.Start(c.interval())
	} else {
		c.scheduler.Stop()
	}
	slog.Info("slideshow toggled", "running", c.state.Running, "interval_ms", c.state.IntervalMS)
	return c.state.Running
}

// SetInterval changes the auto-advance interval. A running slideshow is rescheduled
// at the new interval right away.
func (c *Controller) SetInterval(ms int) error {
	if !IsAllowedInterval(ms) {
		return fmt.Errorf("%w: interval %dms must be one of %v", ErrInvalidArgument, ms, AllowedIntervals)
	}
	c.state.IntervalMS = ms
	if c.state.Running {
		c.scheduler.Reschedule(c.interval())
	}
	return nil
}

func (c *Controller) interval() time.Duration {
	return time.Duration(c.state.IntervalMS) * time.Millisecond
}

func (c *Controller) changed() {
	c.revision++
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

// Images returns a copy of the image list.
func (c *Controller) Images() []string {
	return slices.Clone(c.state.Images)
}

// CurrentIndex is the selected position, or NoSelection.
func (c *Controller) CurrentIndex() int { return c.state.CurrentIndex }

// Running reports whether auto-advance is on.
func (c *Controller) Running() bool { return c.state.Running }

// IntervalMS is the auto-advance interval in milliseconds.
func (c *Controller) IntervalMS() int { return c.state.IntervalMS }

// Folder returns the last folder loaded successfully.
func (c *Controller) Folder() string { return c.folder }

// Current returns the selected image path, or false when nothing is selected.
func (c *Controller) Current() (string, bool) {
	if c.state.CurrentIndex == NoSelection {
		return "", false
	}
	return c.state.Images[c.state.CurrentIndex], true
}

// Snapshot copies the current state for readers outside the loop.
func (c *Controller) Snapshot() Snapshot {
	current, _ := c.Current()
	return Snapshot{
		Folder:     c.folder,
		Loaded:     c.loaded,
		Total:      len(c.state.Images),
		Index:      c.state.CurrentIndex,
		Current:    current,
		Running:    c.state.Running,
		IntervalMS: c.state.IntervalMS,
		Revision:   c.revision,
	}
}

type nopScheduler struct{}

func (nopScheduler) Start(time.Duration) {}
func (nopScheduler) Stop() {}
func (nopScheduler) Reschedule(time.Duration) {}
