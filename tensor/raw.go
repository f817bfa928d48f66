// Copyright 2025 TF-MLP. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/dmorle/TF-MLP/idx"
	"github.com/dmorle/TF-MLP/internal/tensor"
)

// RawTensor is a row-major tensor over a reference-counted byte buffer.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Zero-copy data access via AsUint8() and AsFloat32()
//   - Cheap sharing via Clone() and Release()
//
// Example:
//
//	set, _ := idx.LoadImageSet(ctx, "train-images.idx3-ubyte")
//	raw, _ := tensor.FromDecoded(set, tensor.CPU)
//	pixels := raw.AsUint8() // len == 60000*28*28
type RawTensor = tensor.RawTensor

// Shape holds the dimensions of a tensor, outermost first.
type Shape = tensor.Shape

// DataType identifies the element type of a tensor.
type DataType = tensor.DataType

// Device identifies where tensor memory lives.
type Device = tensor.Device

// Supported data types and devices.
const (
	Uint8   = tensor.Uint8
	Float32 = tensor.Float32
	CPU     = tensor.CPU
)

// NewRaw creates a zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// NewRawFromBytes wraps data in a RawTensor without copying. The tensor owns
// data afterwards.
func NewRawFromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRawFromBytes(data, shape, dtype, device)
}

// FromDecoded moves the buffer of a decoded IDX set into a uint8 tensor.
// The set is released and cannot be handed off again.
func FromDecoded(set *idx.DecodedSet, device Device) (*RawTensor, error) {
	return tensor.FromDecoded(set, device)
}
