package serialization

import "time"

// Format constants.
const (
	FormatVersion = 1
	ModelType     = "BackPropagation"
)

// Record is the persisted state of a two-layer backpropagation network.
type Record struct {
	FormatVersion int               `json:"format_version"`
	ModelID       string            `json:"model_id"`
	ModelType     string            `json:"model_type"`
	CreatedAt     time.Time         `json:"created_at"`
	SampleType    string            `json:"sample_type"` // "uint8", "float32" or "float64"
	InputCount    int               `json:"input_count"`
	HiddenCount   int               `json:"hidden_count"`
	OutputCount   int               `json:"output_count"`
	LearningRate  float64           `json:"learning_rate"`
	Activation    string            `json:"activation"`
	Metadata      map[string]string `json:"metadata,omitempty"`

	InputHiddenWeights  [][]float64 `json:"input_hidden_weights"`  // [input][hidden]
	HiddenOutputWeights [][]float64 `json:"hidden_output_weights"` // [hidden][output]
	HiddenThresholds    []float64   `json:"hidden_thresholds"`
	OutputThresholds    []float64   `json:"output_thresholds"`

	Checksum string `json:"checksum"` // hex SHA-256, see RecordChecksum
}
