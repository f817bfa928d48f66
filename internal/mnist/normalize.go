package mnist

import (
	"fmt"

	"github.com/dmorle/TF-MLP/internal/parallel"
	"github.com/dmorle/TF-MLP/internal/tensor"
)

// Normalize converts a uint8 image tensor into a float32 tensor of the same
// shape with every pixel scaled from 0-255 to [0, 1].
func Normalize(images *tensor.RawTensor) (*tensor.RawTensor, error) {
	if images.DType() != tensor.Uint8 {
		return nil, fmt.Errorf("mnist: normalize needs uint8 pixels, got %s", images.DType())
	}

	out, err := tensor.NewRaw(images.Shape(), tensor.Float32, images.Device())
	if err != nil {
		return nil, fmt.Errorf("mnist: normalize: %w", err)
	}

	src := images.AsUint8()
	dst := out.AsFloat32()
	parallel.For(len(src), func(i int) {
		dst[i] = float32(src[i]) / 255.0
	}, parallel.DefaultConfig())

	return out, nil
}
