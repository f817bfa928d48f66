package mnist

import (
	"bytes"
	"context"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorle/TF-MLP/internal/idx"
	"github.com/dmorle/TF-MLP/internal/logger"
	"github.com/dmorle/TF-MLP/internal/tensor"
)

// writeSplit writes a split of count 2x3 images whose pixels count up from 0
// and labels i%10.
func writeSplit(t *testing.T, dir string, split Split, images, labels int) {
	t.Helper()
	files := FilesFor(dir, split)

	img := binary.BigEndian.AppendUint32(nil, idx.MagicImages)
	for _, v := range []uint32{uint32(images), 2, 3} {
		img = binary.BigEndian.AppendUint32(img, v)
	}
	for i := 0; i < images*6; i++ {
		img = append(img, byte(i))
	}
	require.NoError(t, os.WriteFile(files.Images, img, 0o600))

	lbl := binary.BigEndian.AppendUint32(nil, idx.MagicLabels)
	lbl = binary.BigEndian.AppendUint32(lbl, uint32(labels))
	for i := 0; i < labels; i++ {
		lbl = append(lbl, byte(i%10))
	}
	require.NoError(t, os.WriteFile(files.Labels, lbl, 0o600))
}

func TestFilesFor(t *testing.T) {
	train := FilesFor("data", Train)
	assert.Equal(t, filepath.Join("data", "train-images.idx3-ubyte"), train.Images)
	assert.Equal(t, filepath.Join("data", "train-labels.idx1-ubyte"), train.Labels)

	test := FilesFor("data", Test)
	assert.Equal(t, filepath.Join("data", "t10k-images.idx3-ubyte"), test.Images)
	assert.Equal(t, filepath.Join("data", "t10k-labels.idx1-ubyte"), test.Labels)
}

func TestParseSplit(t *testing.T) {
	s, err := ParseSplit("TEST")
	require.NoError(t, err)
	assert.Equal(t, Test, s)

	s, err = ParseSplit("train")
	require.NoError(t, err)
	assert.Equal(t, Train, s)

	_, err = ParseSplit("validation")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, Train, 4, 4)
	writeSplit(t, dir, Test, 2, 2)

	var logs bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.Text(&logs, slog.LevelDebug))

	ds, err := Load(ctx, dir, Test)
	require.NoError(t, err)
	assert.Equal(t, Test, ds.Split)
	assert.Equal(t, 2, ds.NumSamples())
	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, 3, ds.Columns())
	assert.Equal(t, tensor.Shape{2, 2, 3}, ds.Images.Shape())
	assert.Equal(t, tensor.Shape{2}, ds.Labels.Shape())
	assert.Equal(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, ds.Images.AsUint8())
	assert.Equal(t, []uint8{0, 1}, ds.Labels.AsUint8())
	assert.Contains(t, logs.String(), "loaded split")

	ds, err = Load(ctx, dir, Train)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.NumSamples())
	ds.Release()
}

func TestLoad_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, Train, 3, 2)

	_, err := Load(context.Background(), dir, Train)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, Train, 1, 1)
	require.NoError(t, os.Remove(FilesFor(dir, Train).Labels))

	_, err := Load(context.Background(), dir, Train)
	assert.ErrorIs(t, err, idx.ErrStreamOpenFailed)
}

func TestLoad_WrongFile(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, Train, 1, 1)
	files := FilesFor(dir, Train)
	// Swap the image and label files.
	require.NoError(t, os.Rename(files.Images, files.Images+".tmp"))
	require.NoError(t, os.Rename(files.Labels, files.Images))
	require.NoError(t, os.Rename(files.Images+".tmp", files.Labels))

	_, err := LoadImages(context.Background(), dir, Train)
	assert.ErrorIs(t, err, idx.ErrBadMagic)

	_, err = LoadLabels(context.Background(), dir, Train)
	assert.ErrorIs(t, err, idx.ErrBadMagic)
}

func TestNormalize(t *testing.T) {
	raw, err := tensor.NewRawFromBytes([]byte{0, 51, 255, 102}, tensor.Shape{1, 2, 2}, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)

	out, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.Equal(t, tensor.Shape{1, 2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{0, 0.2, 1, 0.4}, out.AsFloat32(), 1e-6)

	_, err = Normalize(out)
	assert.Error(t, err)
}

func TestNormalize_Large(t *testing.T) {
	data := make([]byte, 100*28*28)
	for i := range data {
		data[i] = byte(i)
	}
	raw, err := tensor.NewRawFromBytes(data, tensor.Shape{100, 28, 28}, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)

	out, err := Normalize(raw)
	require.NoError(t, err)
	got := out.AsFloat32()
	for i, v := range data {
		if got[i] != float32(v)/255.0 {
			t.Fatalf("pixel %d = %v, want %v", i, got[i], float32(v)/255.0)
		}
	}
}
