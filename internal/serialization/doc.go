// Package serialization provides the on-disk record format for trained networks.
//
// A record is a single JSON document:
//
//	{
//	  "format_version": 1,
//	  "model_id": "3f0c...",            // UUID assigned when the record is written
//	  "model_type": "BackPropagation",
//	  "created_at": "2026-10-18T09:00:00Z",
//	  "sample_type": "float64",          // input element type of the network
//	  "input_count": 8000, "hidden_count": 64, "output_count": 15,
//	  "learning_rate": 0.3,
//	  "activation": "sigmoid",
//	  "input_hidden_weights": [[...], ...],  // [input_count][hidden_count]
//	  "hidden_output_weights": [[...], ...], // [hidden_count][output_count]
//	  "hidden_thresholds": [...],
//	  "output_thresholds": [...],
//	  "checksum": "e3b0..."              // hex SHA-256 over dimensions and parameters
//	}
//
// Floats are written in their shortest round-trip representation, so a
// record read back yields bit-identical parameters.
//
// Example usage:
//
//	if err := serialization.WriteFile("BP.json", record); err != nil {
//	    log.Fatal(err)
//	}
//
//	record, err := serialization.ReadFile("BP.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
