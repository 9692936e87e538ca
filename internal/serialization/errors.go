package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrMalformed          = errors.New("malformed model record")
	ErrRecordTooLarge     = errors.New("record exceeds maximum size")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnsupportedModel   = errors.New("unsupported model type")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "shape_mismatch", "non_positive")
	Field   string // Record field involved
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", e.Type, e.Field, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
