package ocr

import (
	"errors"
	"fmt"
)

// ErrNoImageData is returned when a call has no image to work on.
var ErrNoImageData = errors.New("no image data provided")

// ErrEngineUnavailable is returned when the binary was built without the
// Tesseract bindings.
var ErrEngineUnavailable = errors.New("tesseract engine not available; rebuild with CGO_ENABLED=1")

// Failure reports that the engine could not process an image.
type Failure struct {
	// Op is the step that failed, e.g. "decode", "initialize", "recognize".
	Op string

	// Err is the underlying engine error.
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("ocr processing failed: %s: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsFailure reports whether err is or wraps a *Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
