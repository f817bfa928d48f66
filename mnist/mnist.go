// Copyright 2025 TF-MLP. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mnist loads the MNIST dataset splits as tensors.
//
// This package wraps internal/mnist and exports a clean public API.
//
// Example usage:
//
//	ds, err := mnist.Load(ctx, "./data", mnist.Train)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ds.Release()
//
//	fmt.Println(ds.NumSamples())     // 60000
//	fmt.Println(ds.Images.Shape())   // [60000 28 28]
//
//	pixels, err := mnist.Normalize(ds.Images) // float32 in [0, 1]
package mnist

import (
	"context"

	"github.com/dmorle/TF-MLP/internal/mnist"
	"github.com/dmorle/TF-MLP/internal/tensor"
)

// Split selects the training or testing half of the dataset.
type Split = mnist.Split

// Dataset splits.
const (
	Train = mnist.Train
	Test  = mnist.Test
)

// Dataset holds one split as tensors.
type Dataset = mnist.Dataset

// Files names the image and label files of a split.
type Files = mnist.Files

// RawTensor is the array type decoded buffers are handed to.
type RawTensor = tensor.RawTensor

// ErrCountMismatch is returned when a split's image and label counts differ.
var ErrCountMismatch = mnist.ErrCountMismatch

// ParseSplit parses "train" or "test".
func ParseSplit(name string) (Split, error) {
	return mnist.ParseSplit(name)
}

// FilesFor returns the file paths of split inside dir.
func FilesFor(dir string, split Split) Files {
	return mnist.FilesFor(dir, split)
}

// Load decodes the image and label files of split in dir.
func Load(ctx context.Context, dir string, split Split) (*Dataset, error) {
	return mnist.Load(ctx, dir, split)
}

// LoadImages decodes the image file of split into a uint8 [count, rows, columns] tensor.
func LoadImages(ctx context.Context, dir string, split Split) (*RawTensor, error) {
	return mnist.LoadImages(ctx, dir, split)
}

// LoadLabels decodes the label file of split into a uint8 [count] tensor.
func LoadLabels(ctx context.Context, dir string, split Split) (*RawTensor, error) {
	return mnist.LoadLabels(ctx, dir, split)
}

// Normalize scales uint8 pixels to float32 values in [0, 1].
func Normalize(images *RawTensor) (*RawTensor, error) {
	return mnist.Normalize(images)
}
