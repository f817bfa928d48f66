package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where tensor memory lives.
type Device int

// Supported devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// tensorBuffer is a reference-counted byte buffer shared by clones.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
}

func newTensorBuffer(data []byte) *tensorBuffer {
	buf := &tensorBuffer{data: data}
	buf.refCount.Store(1)
	return buf
}

func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release drops one reference and frees the data with the last one.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.data = nil
	}
}

// RawTensor is an untyped, row-major tensor over a reference-counted buffer.
type RawTensor struct {
	buffer *tensorBuffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return newRaw(make([]byte, shape.NumElements()*dtype.Size()), shape, dtype, device), nil
}

// NewRawFromBytes creates a RawTensor that takes ownership of data without
// copying it. The caller must not use data afterwards.
func NewRawFromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if want := shape.NumElements() * dtype.Size(); len(data) != want {
		return nil, fmt.Errorf("buffer holds %d bytes, shape %v of %s needs %d", len(data), shape, dtype, want)
	}
	return newRaw(data, shape, dtype, device), nil
}

func newRaw(data []byte, shape Shape, dtype DataType, device Device) *RawTensor {
	return &RawTensor{
		buffer: newTensorBuffer(data),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the row-major element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the device holding the data.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the underlying bytes without copying.
func (r *RawTensor) Data() []byte {
	return r.buffer.data
}

// AsUint8 returns the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.buffer.data
}

// AsFloat32 reinterprets the data as []float32 without copying.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	data := r.buffer.data
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Clone returns a RawTensor sharing this tensor's buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Release drops this tensor's reference to the buffer.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique reports whether this tensor is the only reference to its buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.refCount.Load() == 1
}
