package tensor

import (
	"errors"
	"fmt"

	"github.com/dmorle/TF-MLP/internal/idx"
)

// FromDecoded moves the buffer of a decoded IDX set into a Uint8 tensor
// shaped like the set. The set is released by the hand-off, so the buffer
// has exactly one owner afterwards.
func FromDecoded(set *idx.DecodedSet, device Device) (*RawTensor, error) {
	if set == nil {
		return nil, errors.New("tensor: nil decoded set")
	}
	if set.Released() {
		return nil, fmt.Errorf("tensor: %s set already handed off", set.Kind())
	}

	shape := Shape(set.Shape())
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor: decoded %s: %w", set.Kind(), err)
	}
	if set.Len() != shape.NumElements() {
		return nil, fmt.Errorf("tensor: decoded %s holds %d bytes for shape %v", set.Kind(), set.Len(), shape)
	}
	return newRaw(set.TakeBuffer(), shape, Uint8, device), nil
}
