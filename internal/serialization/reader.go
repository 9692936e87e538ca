package serialization

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Read decodes, validates and checksum-verifies a record.
func Read(r io.Reader) (*Record, error) {
	limited := &io.LimitedReader{R: r, N: MaxRecordSize + 1}

	var rec Record
	dec := json.NewDecoder(limited)
	if err := dec.Decode(&rec); err != nil {
		if limited.N <= 0 {
			return nil, ErrRecordTooLarge
		}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	if err := ValidateRecord(&rec); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRecordChecksum(&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// ReadFile opens path and reads a record from it.
//
// A missing file yields an error wrapping fs.ErrNotExist.
func ReadFile(path string) (*Record, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	rec, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
