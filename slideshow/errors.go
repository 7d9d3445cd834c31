package slideshow

import "errors"

// Error kinds reported by the slideshow and its host. Callers match them with errors.Is.
var (
	// ErrIO means a folder does not exist, is not a directory or cannot be read.
	ErrIO = errors.New("folder inaccessible")

	// ErrInvalidArgument means an operation was given a value outside its allowed set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRender means the host could not decode or display an image.
	ErrRender = errors.New("image cannot be displayed")
)
