// Package mnist loads the MNIST train and test splits from a data directory
// and hands the decoded buffers to tensors.
package mnist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmorle/TF-MLP/internal/idx"
	"github.com/dmorle/TF-MLP/internal/logger"
	"github.com/dmorle/TF-MLP/internal/parallel"
	"github.com/dmorle/TF-MLP/internal/tensor"
)

// ErrCountMismatch is returned when a split's image and label files disagree
// on the number of samples.
var ErrCountMismatch = errors.New("mnist: image and label counts differ")

// Split selects the training or testing half of the dataset.
type Split int

// Dataset splits.
const (
	Train Split = iota
	Test
)

// String returns the split name.
func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return "unknown"
	}
}

// ParseSplit parses "train" or "test".
func ParseSplit(name string) (Split, error) {
	switch strings.ToLower(name) {
	case "train", "training":
		return Train, nil
	case "test", "testing", "t10k":
		return Test, nil
	default:
		return 0, fmt.Errorf("mnist: unknown split %q (want train or test)", name)
	}
}

// Files names the image and label files of a split.
type Files struct {
	Images string
	Labels string
}

// FilesFor returns the file paths of split inside dir.
//
// Expected files in dir:
//   - train-images.idx3-ubyte, train-labels.idx1-ubyte
//   - t10k-images.idx3-ubyte, t10k-labels.idx1-ubyte
func FilesFor(dir string, split Split) Files {
	prefix := "train"
	if split == Test {
		prefix = "t10k"
	}
	return Files{
		Images: filepath.Join(dir, prefix+"-images.idx3-ubyte"),
		Labels: filepath.Join(dir, prefix+"-labels.idx1-ubyte"),
	}
}

// Dataset holds one split as tensors.
type Dataset struct {
	Split  Split
	Images *tensor.RawTensor // uint8 [count, rows, columns]
	Labels *tensor.RawTensor // uint8 [count]
}

// NumSamples returns the number of image/label pairs.
func (d *Dataset) NumSamples() int {
	return d.Labels.Shape()[0]
}

// Rows returns the height of each image.
func (d *Dataset) Rows() int {
	return d.Images.Shape()[1]
}

// Columns returns the width of each image.
func (d *Dataset) Columns() int {
	return d.Images.Shape()[2]
}

// Release drops the dataset's references to its buffers.
func (d *Dataset) Release() {
	d.Images.Release()
	d.Labels.Release()
}

// LoadImages decodes the image file of split in dir into a uint8 tensor of
// shape [count, rows, columns].
func LoadImages(ctx context.Context, dir string, split Split) (*tensor.RawTensor, error) {
	return load(ctx, FilesFor(dir, split).Images, idx.LoadImageSet)
}

// LoadLabels decodes the label file of split in dir into a uint8 tensor of
// shape [count].
func LoadLabels(ctx context.Context, dir string, split Split) (*tensor.RawTensor, error) {
	return load(ctx, FilesFor(dir, split).Labels, idx.LoadLabelSet)
}

// Load decodes both files of split concurrently and checks that they hold
// the same number of samples.
func Load(ctx context.Context, dir string, split Split) (*Dataset, error) {
	var images, labels *tensor.RawTensor

	err := parallel.Do(
		func() (err error) {
			images, err = LoadImages(ctx, dir, split)
			return err
		},
		func() (err error) {
			labels, err = LoadLabels(ctx, dir, split)
			return err
		},
	)
	if err != nil {
		release(images, labels)
		return nil, fmt.Errorf("mnist: load %s split: %w", split, err)
	}

	if n, m := images.Shape()[0], labels.Shape()[0]; n != m {
		release(images, labels)
		return nil, fmt.Errorf("%w: %s split has %d images and %d labels", ErrCountMismatch, split, n, m)
	}

	logger.FromContext(ctx).Debug("loaded split",
		"split", split.String(),
		"samples", labels.Shape()[0],
		"image_shape", images.Shape(),
	)
	return &Dataset{Split: split, Images: images, Labels: labels}, nil
}

func load(ctx context.Context, path string, decode func(context.Context, string) (*idx.DecodedSet, error)) (*tensor.RawTensor, error) {
	set, err := decode(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("decoded idx file", "path", path, "kind", set.Kind().String(), "shape", set.Shape())
	return tensor.FromDecoded(set, tensor.CPU)
}

func release(ts ...*tensor.RawTensor) {
	for _, t := range ts {
		if t != nil {
			t.Release()
		}
	}
}
