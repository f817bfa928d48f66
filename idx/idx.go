// Copyright 2025 TF-MLP. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package idx decodes IDX dataset files (the MNIST distribution format).
//
// This package wraps internal/idx and exports its public API.
//
// Example usage:
//
//	import "github.com/dmorle/TF-MLP/idx"
//
//	images, err := idx.LoadImageSet(ctx, "data/train-images.idx3-ubyte")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(images.Shape()) // [60000 28 28]
//
//	labels, err := idx.DecodeLabelSet(r) // any io.Reader
//	switch {
//	case errors.Is(err, idx.ErrBadMagic):
//	    // not a label file
//	case errors.Is(err, idx.ErrTruncatedStream):
//	    // file shorter than its header declares
//	}
package idx

import (
	"context"
	"io"

	"github.com/dmorle/TF-MLP/internal/idx"
)

// DecodedSet is a decoded image or label set: an owned byte buffer plus the
// shape needed to interpret it.
type DecodedSet = idx.DecodedSet

// DecodeOptions configures a decode.
type DecodeOptions = idx.DecodeOptions

// DecodeError describes a failed decode. It unwraps to one of the Err* values.
type DecodeError = idx.DecodeError

// Kind identifies the record shape of an IDX file.
type Kind = idx.Kind

// Supported kinds.
const (
	KindUnknown = idx.KindUnknown
	KindImages  = idx.KindImages
	KindLabels  = idx.KindLabels
)

// Magic numbers of the supported formats.
const (
	MagicImages = idx.MagicImages
	MagicLabels = idx.MagicLabels
)

// Failure kinds, for use with errors.Is.
var (
	ErrStreamOpenFailed  = idx.ErrStreamOpenFailed
	ErrTruncatedStream   = idx.ErrTruncatedStream
	ErrBadMagic          = idx.ErrBadMagic
	ErrInvalidDimensions = idx.ErrInvalidDimensions
	ErrAllocationFailed  = idx.ErrAllocationFailed
)

// DecodeImageSet decodes an image set (magic 0x00000803) from r.
func DecodeImageSet(r io.Reader) (*DecodedSet, error) {
	return idx.DecodeImageSet(r)
}

// DecodeImageSetWithOptions decodes an image set from r with opts.
func DecodeImageSetWithOptions(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	return idx.DecodeImageSetWithOptions(r, opts)
}

// DecodeLabelSet decodes a label set (magic 0x00000801) from r.
func DecodeLabelSet(r io.Reader) (*DecodedSet, error) {
	return idx.DecodeLabelSet(r)
}

// DecodeLabelSetWithOptions decodes a label set from r with opts.
func DecodeLabelSetWithOptions(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	return idx.DecodeLabelSetWithOptions(r, opts)
}

// Decode detects the kind of r from its magic number and decodes it.
func Decode(r io.Reader, opts DecodeOptions) (*DecodedSet, error) {
	return idx.Decode(r, opts)
}

// LoadImageSet opens and decodes the image set at path. The file is closed
// before LoadImageSet returns.
func LoadImageSet(ctx context.Context, path string) (*DecodedSet, error) {
	return idx.LoadImageSet(ctx, path)
}

// LoadLabelSet opens and decodes the label set at path.
func LoadLabelSet(ctx context.Context, path string) (*DecodedSet, error) {
	return idx.LoadLabelSet(ctx, path)
}

// LoadFile opens path and decodes it as whichever kind its magic names.
func LoadFile(ctx context.Context, path string, opts DecodeOptions) (*DecodedSet, error) {
	return idx.LoadFile(ctx, path, opts)
}

// KindOf maps a magic number to its kind.
func KindOf(magic uint32) Kind {
	return idx.KindOf(magic)
}
