// Copyright 2026 BPNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a two-layer backpropagation network and the contracts
// it is built on.
//
// # Overview
//
// This package contains:
//   - Network: input -> hidden -> output, one activation, per-sample gradient descent
//   - Module and Learnable: the forward and forward+backward contracts
//   - Compose: a forward-only chain of modules
//   - Uniform: the weight and threshold initializer
//   - Save / Load: a checksummed JSON record of the parameters
//
// Networks are generic over the input sample type (uint8, float32 or
// float64). Hidden and output activations are always float64.
//
// # Basic Usage
//
//	import "github.com/bpnet-ml/bpnet/nn"
//
//	func main() {
//	    net, err := nn.NewNetwork[float64](nn.Config{
//	        InputCount:   8000,
//	        HiddenCount:  64,
//	        OutputCount:  15,
//	        LearningRate: 0.3,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, err := net.Forward(pixels)  // len(pixels) == 8000
//	    ...
//	    err = net.Backward(target)          // one-hot, len 15
//	}
//
// # Composition
//
// Compose feeds the output of each module to the next. Only the first module
// sees the raw samples; later modules take float64 vectors:
//
//	encoder, _ := nn.NewNetwork[uint8](nn.Config{InputCount: 8000, HiddenCount: 64, OutputCount: 32, LearningRate: 0.3})
//	head, _ := nn.NewNetwork[float64](nn.Config{InputCount: 32, HiddenCount: 16, OutputCount: 15, LearningRate: 0.3})
//	model, err := nn.NewCompose[uint8](encoder, head)
//
// Compose does not implement Learnable; train each network on its own.
//
// # Persistence
//
//	err := net.Save("BP.json", map[string]string{"dataset": "yale"})
//	loaded, record, err := nn.Load[float64]("BP.json")
//
// Load verifies the record checksum and rejects a record whose sample type
// differs from the requested one.
package nn
