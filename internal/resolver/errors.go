package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/StinkyLord/rosettabom/internal/model"
)

var (
	// ErrInvalidInput is returned for empty input.
	ErrInvalidInput = errors.New("input must be a non-empty string")

	// ErrUnsupportedFormat is returned when no extractor is registered for
	// the detected format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformed is wrapped by every MalformedError.
	ErrMalformed = errors.New("malformed identifier")
)

// MalformedError reports an input whose extractor could not recover a
// component or a version.
type MalformedError struct {
	Input       string
	Format      model.Format
	Diagnostics []model.Diagnostic
}

func (e *MalformedError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}
	return fmt.Sprintf("malformed %s identifier %q: %s", e.Format, e.Input, strings.Join(parts, "; "))
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

// errorKind maps an extraction error onto a short metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "other"
	}
}
