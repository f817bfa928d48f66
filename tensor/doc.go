// Copyright 2025 TF-MLP. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array type decoded IDX datasets are handed to.
//
// # Overview
//
// A decoded set owns its payload buffer until it is handed to a tensor:
//
//	import (
//	    "github.com/dmorle/TF-MLP/idx"
//	    "github.com/dmorle/TF-MLP/tensor"
//	)
//
//	set, err := idx.LoadLabelSet(ctx, "train-labels.idx1-ubyte")
//	if err != nil {
//	    return err
//	}
//	labels, err := tensor.FromDecoded(set, tensor.CPU)
//	// set.Released() == true; labels now owns the buffer.
//
// # Supported Data Types
//
//   - uint8 (raw pixels and labels)
//   - float32 (normalized pixels)
//
// # Memory Management
//
// The buffer moves from the decoded set to the tensor without a copy. Clones
// share it through reference counting, and Release drops a reference.
package tensor
