package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorle/TF-MLP/internal/idx"
	"github.com/dmorle/TF-MLP/internal/mnist"
)

func writeImages(t *testing.T, path string, count, rows, columns uint32, pixel func(i int) byte) {
	t.Helper()
	b := binary.BigEndian.AppendUint32(nil, idx.MagicImages)
	for _, v := range []uint32{count, rows, columns} {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	for i := 0; i < int(count*rows*columns); i++ {
		b = append(b, pixel(i))
	}
	require.NoError(t, os.WriteFile(path, b, 0o600))
}

func writeLabels(t *testing.T, path string, labels ...byte) {
	t.Helper()
	b := binary.BigEndian.AppendUint32(nil, idx.MagicLabels)
	b = binary.BigEndian.AppendUint32(b, uint32(len(labels)))
	require.NoError(t, os.WriteFile(path, append(b, labels...), 0o600))
}

// run executes the CLI with a config path that does not exist unless the
// caller passes its own --config.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"mnistio", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	err := app.Run(context.Background(), argv)
	return stdout.String(), stderr.String(), err
}

func TestInspect_Labels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels")
	writeLabels(t, path, 5, 7, 9, 5)

	out, _, err := run(t, "inspect", "--head", "2", path)
	require.NoError(t, err)
	assert.Contains(t, out, "kind:  labels")
	assert.Contains(t, out, "magic: 0x00000801")
	assert.Contains(t, out, "shape: [4]")
	assert.Contains(t, out, "label 5: 2")
	assert.Contains(t, out, "labels: [5 7]")
}

func TestInspect_ImagesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images")
	writeImages(t, path, 3, 2, 4, func(i int) byte { return byte(i) })

	out, _, err := run(t, "inspect", "--json", path)
	require.NoError(t, err)

	var got setSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "images", got.Kind)
	assert.Equal(t, "0x00000803", got.Magic)
	assert.Equal(t, []int{3, 2, 4}, got.Shape)
	assert.Equal(t, 24, got.Bytes)
	assert.Empty(t, got.Histogram)
}

func TestInspect_ImageHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images")
	writeImages(t, path, 1, 2, 2, func(i int) byte { return []byte{0, 255, 255, 0}[i] })

	out, _, err := run(t, "inspect", "--head", "5", path)
	require.NoError(t, err)
	assert.Contains(t, out, "image 0:\n @\n@ \n")
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte{0, 0, 8, 2, 0, 0, 0, 1, 0}, 0o600))

	_, stderr, err := run(t, "inspect", bad)
	assert.ErrorIs(t, err, idx.ErrBadMagic)
	assert.Contains(t, stderr, "decode failed")

	_, _, err = run(t, "inspect", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, idx.ErrStreamOpenFailed)

	big := filepath.Join(dir, "big")
	writeImages(t, big, 2, 8, 8, func(int) byte { return 0 })
	_, _, err = run(t, "inspect", "--max-bytes", "64", big)
	assert.ErrorIs(t, err, idx.ErrAllocationFailed)

	_, _, err = run(t, "inspect")
	assert.Error(t, err)
}

func writeSplit(t *testing.T, dir string, split mnist.Split) {
	t.Helper()
	files := mnist.FilesFor(dir, split)
	writeImages(t, files.Images, 3, 2, 2, func(i int) byte { return 255 })
	writeLabels(t, files.Labels, 1, 1, 4)
}

func TestLoad_FromConfig(t *testing.T) {
	dataDir := t.TempDir()
	writeSplit(t, dataDir, mnist.Test)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: "+dataDir+"\nlog_format: json\nlog_level: debug\n"), 0o600))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(context.Background(), []string{"mnistio", "--config", cfgPath, "load", "--split", "test", "--normalize", "--json"})
	require.NoError(t, err)

	var got splitSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "test", got.Split)
	assert.Equal(t, 3, got.Samples)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, 2, got.Columns)
	assert.Equal(t, []int{0, 2, 0, 0, 1}, got.Histogram)
	require.NotNil(t, got.MeanPixel)
	assert.InDelta(t, 1.0, *got.MeanPixel, 1e-9)

	// JSON logs at debug level, tagged with a run id.
	assert.Contains(t, stderr.String(), `"msg":"loaded"`)
	assert.Contains(t, stderr.String(), `"run":`)
}

func TestLoad_FlagOverridesConfig(t *testing.T) {
	dataDir := t.TempDir()
	writeSplit(t, dataDir, mnist.Train)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: /nonexistent\n"), 0o600))

	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(context.Background(), []string{"mnistio", "--config", cfgPath, "load", "--data-dir", dataDir})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "split:   train")
	assert.Contains(t, stdout.String(), "samples: 3")
}

func TestLoad_NormalizeBlackImages(t *testing.T) {
	dataDir := t.TempDir()
	files := mnist.FilesFor(dataDir, mnist.Train)
	writeImages(t, files.Images, 2, 2, 2, func(int) byte { return 0 })
	writeLabels(t, files.Labels, 3, 3)

	stdout, _, err := run(t, "load", "--data-dir", dataDir, "--normalize")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mean:    0.0000\n")

	stdout, _, err = run(t, "load", "--data-dir", dataDir, "--normalize", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"mean_pixel": 0`)

	stdout, _, err = run(t, "load", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "mean:")
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := run(t, "load", "--data-dir", t.TempDir())
	assert.ErrorIs(t, err, idx.ErrStreamOpenFailed)

	_, _, err = run(t, "load", "--split", "validation")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /data/mnist\nlog_level: warn\n"), 0o600))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{DataDir: "/data/mnist", LogLevel: "warn"}, cfg)

	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mnistio "+version+"\n", out)
}

func TestRenderImage(t *testing.T) {
	assert.Equal(t, " .\n#@\n", renderImage([]byte{0, 29, 200, 255}, 2, 2))
}
