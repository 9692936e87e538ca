package serialization

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Write encodes r as indented JSON.
//
// FormatVersion, ModelType and Checksum are filled in; ModelID and CreatedAt
// are assigned when empty. r is updated in place.
func Write(w io.Writer, r *Record) error {
	r.FormatVersion = FormatVersion
	r.ModelType = ModelType
	if r.ModelID == "" {
		r.ModelID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	if err := ValidateRecord(r); err != nil {
		return fmt.Errorf("refusing to write invalid record: %w", err)
	}

	sum := RecordChecksum(r)
	r.Checksum = hex.EncodeToString(sum[:])

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// WriteFile writes r to path, replacing any existing file.
//
// The record is encoded in full before path is touched, then written to a
// temporary file in the same directory and renamed over path. On error the
// previous file is left as it was.
func WriteFile(path string, r *Record) (err error) {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	//nolint:gosec // G302: model files are meant to be readable
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
