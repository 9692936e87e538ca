package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
)

// RecordChecksum hashes the dimensions and all parameter values of a record.
//
// Values are fed as little-endian IEEE-754 bits, row by row, in the order
// input-hidden weights, hidden-output weights, hidden thresholds, output
// thresholds. Metadata, ids and timestamps are not covered.
func RecordChecksum(r *Record) [32]byte {
	h := sha256.New()
	var buf [8]byte

	for _, n := range []int{r.InputCount, r.HiddenCount, r.OutputCount} {
		binary.LittleEndian.PutUint64(buf[:], uint64(n)) //nolint:gosec // G115: dimensions are validated positive
		h.Write(buf[:])
	}
	writeFloats(h, &buf, r.LearningRate)
	for _, row := range r.InputHiddenWeights {
		writeFloats(h, &buf, row...)
	}
	for _, row := range r.HiddenOutputWeights {
		writeFloats(h, &buf, row...)
	}
	writeFloats(h, &buf, r.HiddenThresholds...)
	writeFloats(h, &buf, r.OutputThresholds...)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func writeFloats(h hash.Hash, buf *[8]byte, values ...float64) {
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
}

// validateRecordChecksum checks the hex checksum stored in r against
// RecordChecksum.
func validateRecordChecksum(r *Record) error {
	stored, err := hex.DecodeString(r.Checksum)
	if err != nil || len(stored) != sha256.Size {
		return ErrChecksumMismatch
	}
	if sum := RecordChecksum(r); !bytes.Equal(sum[:], stored) {
		return ErrChecksumMismatch
	}
	return nil
}
