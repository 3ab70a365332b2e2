package download

import (
	"errors"
	"fmt"
)

// Validation errors. No engine call is made when one of these is returned.
var (
	ErrInvalidURL       = errors.New("inform a valid link")
	ErrInvalidDirectory = errors.New("invalid download directory")
	ErrNoFormat         = errors.New("select a video or audio option")
)

// ErrUnexpected marks failures that are neither validation nor engine errors
var ErrUnexpected = errors.New("an unexpected error occurred")

// IsValidationError reports whether err is one of the input validation errors
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidDirectory) ||
		errors.Is(err, ErrNoFormat)
}

// DownloadError wraps a failure reported by the engine. Op names the engine
// operation: "metadata" or "download".
type DownloadError struct {
	Op  string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("error when downloading the file: %v", e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

func unexpected(err error) error {
	return fmt.Errorf("%w: %v", ErrUnexpected, err)
}
