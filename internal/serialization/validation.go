package serialization

import (
	"fmt"
	"math"
)

// Validation limits for resource protection.
const (
	MaxRecordSize = 1 << 30 // 1GB - maximum encoded record size
	MaxUnits      = 1 << 24 // maximum units in any layer
)

// Sample type names accepted in records.
const (
	SampleUint8   = "uint8"
	SampleFloat32 = "float32"
	SampleFloat64 = "float64"
)

// ValidateRecord checks version, model type, dimensions, parameter shapes
// and that every parameter is finite.
//
// It does not verify the checksum; see Read.
func ValidateRecord(r *Record) error {
	if r.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, r.FormatVersion, FormatVersion)
	}
	if r.ModelType != ModelType {
		return fmt.Errorf("%w: %q", ErrUnsupportedModel, r.ModelType)
	}

	switch r.SampleType {
	case SampleUint8, SampleFloat32, SampleFloat64:
	default:
		return &ValidationError{
			Type:    "invalid_sample_type",
			Field:   "sample_type",
			Details: fmt.Sprintf("%q is not one of uint8, float32, float64", r.SampleType),
		}
	}

	for _, d := range []struct {
		field string
		n     int
	}{
		{"input_count", r.InputCount},
		{"hidden_count", r.HiddenCount},
		{"output_count", r.OutputCount},
	} {
		if d.n <= 0 || d.n > MaxUnits {
			return &ValidationError{
				Type:    "invalid_dimension",
				Field:   d.field,
				Details: fmt.Sprintf("got %d, want 1..%d", d.n, MaxUnits),
			}
		}
	}

	if !(r.LearningRate > 0) || math.IsInf(r.LearningRate, 0) {
		return &ValidationError{
			Type:    "non_positive",
			Field:   "learning_rate",
			Details: fmt.Sprintf("got %v", r.LearningRate),
		}
	}

	if err := validateMatrix("input_hidden_weights", r.InputHiddenWeights, r.InputCount, r.HiddenCount); err != nil {
		return err
	}
	if err := validateMatrix("hidden_output_weights", r.HiddenOutputWeights, r.HiddenCount, r.OutputCount); err != nil {
		return err
	}
	if err := validateVector("hidden_thresholds", r.HiddenThresholds, r.HiddenCount); err != nil {
		return err
	}
	return validateVector("output_thresholds", r.OutputThresholds, r.OutputCount)
}

func validateMatrix(field string, m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return &ValidationError{
			Type:    "shape_mismatch",
			Field:   field,
			Details: fmt.Sprintf("got %d rows, expected %d", len(m), rows),
		}
	}
	for i, row := range m {
		if len(row) != cols {
			return &ValidationError{
				Type:    "shape_mismatch",
				Field:   field,
				Details: fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), cols),
			}
		}
		if j, ok := firstNonFinite(row); ok {
			return &ValidationError{
				Type:    "non_finite",
				Field:   field,
				Details: fmt.Sprintf("[%d][%d] is %v", i, j, row[j]),
			}
		}
	}
	return nil
}

func validateVector(field string, v []float64, n int) error {
	if len(v) != n {
		return &ValidationError{
			Type:    "shape_mismatch",
			Field:   field,
			Details: fmt.Sprintf("got %d values, expected %d", len(v), n),
		}
	}
	if i, ok := firstNonFinite(v); ok {
		return &ValidationError{
			Type:    "non_finite",
			Field:   field,
			Details: fmt.Sprintf("[%d] is %v", i, v[i]),
		}
	}
	return nil
}

// firstNonFinite returns the index of the first NaN or infinite value.
func firstNonFinite(v []float64) (int, bool) {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i, true
		}
	}
	return 0, false
}
