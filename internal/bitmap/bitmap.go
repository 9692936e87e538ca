// Package bitmap decodes uncompressed BMP files into raw pixel bytes.
//
// Only the two fixed headers are interpreted:
//
//	file header  (14 bytes): signature "BM", file size, reserved1, reserved2, data offset
//	info header  (40 bytes): header size, width, height, planes, bits per pixel,
//	                         compression, image size, x/y resolution,
//	                         colours used, important colours
//
// All fields are little endian. Pixel data runs from the declared data offset
// to the declared file size; anything between the headers and the data
// offset (a colour table, padding) is skipped.
package bitmap

import (
	"encoding/binary"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

// Header sizes in bytes.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeaderSize     = FileHeaderSize + InfoHeaderSize
)

// Signature is the file type marker "BM" read as a little-endian uint16.
const Signature uint16 = 'B' | 'M'<<8

var (
	// ErrNotFound wraps fs.ErrNotExist for a missing image file.
	ErrNotFound = errors.New("bitmap not found")

	// ErrShortHeader means fewer bytes than the two fixed headers.
	ErrShortHeader = errors.New("bitmap shorter than its headers")

	// ErrInvalidSignature means the file does not start with "BM".
	ErrInvalidSignature = errors.New("bitmap signature is not BM")

	// ErrInvalidOffset means the data offset lies inside the headers or
	// past the declared file size.
	ErrInvalidOffset = errors.New("bitmap data offset out of range")

	// ErrTruncated means the declared file size exceeds the available bytes.
	ErrTruncated = errors.New("bitmap truncated")
)

// FileHeader is the BITMAPFILEHEADER structure.
type FileHeader struct {
	Signature  uint16
	FileSize   uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

// InfoHeader is the BITMAPINFOHEADER structure.
type InfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Image is a decoded bitmap.
type Image struct {
	File FileHeader
	Info InfoHeader

	// Data holds the pixel bytes [DataOffset, FileSize) exactly as stored,
	// including any row padding.
	Data []byte
}

// Decode parses a BMP held in memory. Data is copied out of b.
func Decode(b []byte) (*Image, error) {
	if len(b) < HeaderSize {
		return nil, errors.Wrapf(ErrShortHeader, "got %d bytes, need %d", len(b), HeaderSize)
	}

	le := binary.LittleEndian
	img := &Image{
		File: FileHeader{
			Signature:  le.Uint16(b[0:2]),
			FileSize:   le.Uint32(b[2:6]),
			Reserved1:  le.Uint16(b[6:8]),
			Reserved2:  le.Uint16(b[8:10]),
			DataOffset: le.Uint32(b[10:14]),
		},
		Info: InfoHeader{
			HeaderSize:      le.Uint32(b[14:18]),
			Width:           int32(le.Uint32(b[18:22])), //nolint:gosec // G115: two's complement reinterpretation
			Height:          int32(le.Uint32(b[22:26])), //nolint:gosec // G115: negative height marks top-down rows
			Planes:          le.Uint16(b[26:28]),
			BitsPerPixel:    le.Uint16(b[28:30]),
			Compression:     le.Uint32(b[30:34]),
			ImageSize:       le.Uint32(b[34:38]),
			XPixelsPerMeter: int32(le.Uint32(b[38:42])), //nolint:gosec // G115: two's complement reinterpretation
			YPixelsPerMeter: int32(le.Uint32(b[42:46])), //nolint:gosec // G115: two's complement reinterpretation
			ColorsUsed:      le.Uint32(b[46:50]),
			ColorsImportant: le.Uint32(b[50:54]),
		},
	}

	if img.File.Signature != Signature {
		return nil, errors.Wrapf(ErrInvalidSignature, "got %#04x", img.File.Signature)
	}

	size := uint64(img.File.FileSize)
	offset := uint64(img.File.DataOffset)
	if size > uint64(len(b)) {
		return nil, errors.Wrapf(ErrTruncated, "declared %d bytes, got %d", size, len(b))
	}
	if offset < HeaderSize || offset > size {
		return nil, errors.Wrapf(ErrInvalidOffset, "offset %d, headers end at %d, file size %d", offset, HeaderSize, size)
	}

	img.Data = make([]byte, size-offset)
	copy(img.Data, b[offset:size])

	return img, nil
}

// ReadFile reads and decodes the BMP at path.
func ReadFile(path string) (*Image, error) {
	//nolint:gosec // G304: File path comes from the dataset layout
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(notFound{err}, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	img, err := Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return img, nil
}

// Normalized returns the pixel bytes scaled to [0, 1].
func (img *Image) Normalized() []float64 {
	out := make([]float64, len(img.Data))
	for i, v := range img.Data {
		out[i] = float64(v) / 255.0
	}
	return out
}

// notFound matches both ErrNotFound and the underlying fs error.
type notFound struct{ err error }

func (e notFound) Error() string        { return ErrNotFound.Error() + ": " + e.err.Error() }
func (e notFound) Unwrap() error        { return e.err }
func (e notFound) Is(target error) bool { return target == ErrNotFound }
