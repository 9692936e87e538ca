package nn

import (
	"fmt"
	"io"

	"github.com/bpnet-ml/bpnet/internal/activation"
	"github.com/bpnet-ml/bpnet/internal/serialization"
)

// Record returns a deep copy of the network's parameters and metadata.
func (n *Network[T]) Record() *serialization.Record {
	return &serialization.Record{
		FormatVersion:       serialization.FormatVersion,
		ModelType:           serialization.ModelType,
		SampleType:          SampleType[T](),
		InputCount:          n.inputCount,
		HiddenCount:         n.hiddenCount,
		OutputCount:         n.outputCount,
		LearningRate:        n.learningRate,
		Activation:          n.act.Name(),
		InputHiddenWeights:  cloneMatrix(n.inputHidden),
		HiddenOutputWeights: cloneMatrix(n.hiddenOutput),
		HiddenThresholds:    append([]float64(nil), n.hiddenThresholds...),
		OutputThresholds:    append([]float64(nil), n.outputThresholds...),
	}
}

// FromRecord builds a Network from a validated record.
//
// The record's sample type must match T. The cached Forward state starts
// empty.
func FromRecord[T Sample](rec *serialization.Record) (*Network[T], error) {
	if err := serialization.ValidateRecord(rec); err != nil {
		return nil, err
	}
	if want := SampleType[T](); rec.SampleType != want {
		return nil, fmt.Errorf("%w: record holds %s inputs, requested %s", ErrSampleTypeMismatch, rec.SampleType, want)
	}
	act, err := activation.Lookup(rec.Activation)
	if err != nil {
		return nil, err
	}

	n := newNetwork[T](rec.InputCount, rec.HiddenCount, rec.OutputCount, rec.LearningRate, act)
	for i, row := range rec.InputHiddenWeights {
		copy(n.inputHidden[i], row)
	}
	for j, row := range rec.HiddenOutputWeights {
		copy(n.hiddenOutput[j], row)
	}
	copy(n.hiddenThresholds, rec.HiddenThresholds)
	copy(n.outputThresholds, rec.OutputThresholds)

	return n, nil
}

// checkActivation reports whether the activation survives a name round trip.
func (n *Network[T]) checkActivation() error {
	name := n.act.Name()
	registered, err := activation.Lookup(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsavableActivation, err)
	}
	if registered != n.act {
		return fmt.Errorf("%w: %q is registered to %T, network uses %T",
			ErrUnsavableActivation, name, registered, n.act)
	}
	return nil
}

// Encode writes the network as a JSON record.
//
// metadata is stored alongside the parameters and may be nil. Networks with
// an activation not registered under its own name are rejected.
func (n *Network[T]) Encode(w io.Writer, metadata map[string]string) error {
	if err := n.checkActivation(); err != nil {
		return err
	}
	rec := n.Record()
	rec.Metadata = metadata
	return serialization.Write(w, rec)
}

// Save writes the network to path. The file is replaced only once the
// whole record has been encoded, so a failed save keeps the previous model.
//
// Example:
//
//	if err := net.Save("BP.json", map[string]string{"epochs": "7"}); err != nil {
//	    log.Fatal(err)
//	}
func (n *Network[T]) Save(path string, metadata map[string]string) error {
	if err := n.checkActivation(); err != nil {
		return fmt.Errorf("failed to save network: %w", err)
	}
	rec := n.Record()
	rec.Metadata = metadata
	if err := serialization.WriteFile(path, rec); err != nil {
		return fmt.Errorf("failed to save network: %w", err)
	}
	return nil
}

// Decode reads a network written by Encode.
func Decode[T Sample](r io.Reader) (*Network[T], *serialization.Record, error) {
	rec, err := serialization.Read(r)
	if err != nil {
		return nil, nil, err
	}
	n, err := FromRecord[T](rec)
	if err != nil {
		return nil, nil, err
	}
	return n, rec, nil
}

// Load reads a network saved by Save.
//
// A missing file yields an error wrapping fs.ErrNotExist; corrupt files
// yield serialization.ErrMalformed, serialization.ErrChecksumMismatch or a
// *serialization.ValidationError.
func Load[T Sample](path string) (*Network[T], *serialization.Record, error) {
	rec, err := serialization.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load network: %w", err)
	}
	n, err := FromRecord[T](rec)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load network: %w", err)
	}
	return n, rec, nil
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := newMatrix(len(m), 0)
	if len(m) > 0 {
		out = newMatrix(len(m), len(m[0]))
	}
	for i, row := range m {
		copy(out[i], row)
	}
	return out
}
