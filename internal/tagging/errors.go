package tagging

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/binaryphile/genre-fill/internal/mpeg"
)

// Failure classes for a single file. Match with errors.Is.
var (
	ErrNotAudio   = errors.New("not an audio file")
	ErrPermission = errors.New("permission denied")
	ErrIO         = errors.New("i/o error")
)

// classify tags err with exactly one failure class, keeping the cause.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotAudio), errors.Is(err, ErrPermission), errors.Is(err, ErrIO):
		return err
	case errors.Is(err, mpeg.ErrNotMPEG):
		return fmt.Errorf("%w: %w", ErrNotAudio, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}
