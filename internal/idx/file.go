package idx

import (
	"context"
	"io"
	"os"
)

// LoadImageSet decodes the image set stored at path.
func LoadImageSet(ctx context.Context, path string) (*DecodedSet, error) {
	return LoadImageSetWithOptions(ctx, path, DecodeOptions{})
}

// LoadImageSetWithOptions decodes the image set stored at path with opts.
func LoadImageSetWithOptions(ctx context.Context, path string, opts DecodeOptions) (*DecodedSet, error) {
	return loadFile(ctx, path, opts, DecodeImageSetWithOptions)
}

// LoadLabelSet decodes the label set stored at path.
func LoadLabelSet(ctx context.Context, path string) (*DecodedSet, error) {
	return LoadLabelSetWithOptions(ctx, path, DecodeOptions{})
}

// LoadLabelSetWithOptions decodes the label set stored at path with opts.
func LoadLabelSetWithOptions(ctx context.Context, path string, opts DecodeOptions) (*DecodedSet, error) {
	return loadFile(ctx, path, opts, DecodeLabelSetWithOptions)
}

// LoadFile decodes the file at path as whichever kind its magic number names.
func LoadFile(ctx context.Context, path string, opts DecodeOptions) (*DecodedSet, error) {
	return loadFile(ctx, path, opts, Decode)
}

// loadFile opens path, runs decode on it and closes the file on every path.
// The context is only consulted before the file is opened.
//
// The size of a regular file bounds the payload a header may declare, so a
// short file fails before its payload buffer is allocated.
func loadFile(
	ctx context.Context,
	path string,
	opts DecodeOptions,
	decode func(io.Reader, DecodeOptions) (*DecodedSet, error),
) (*DecodedSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &DecodeError{Op: "open", Path: path, Err: ErrStreamOpenFailed, Cause: err}
	}

	//nolint:gosec // G304: dataset paths come from the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Op: "open", Path: path, Err: ErrStreamOpenFailed, Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &DecodeError{Op: "stat", Path: path, Err: ErrStreamOpenFailed, Cause: err}
	}
	if info.Mode().IsRegular() {
		opts.streamSize = info.Size()
	}

	set, err := decode(f, opts)
	if err != nil {
		return nil, withPath(err, path)
	}
	return set, nil
}
