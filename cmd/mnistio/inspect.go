package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/dmorle/TF-MLP/internal/idx"
	"github.com/dmorle/TF-MLP/internal/logger"
)

// setSummary is the printed description of one decoded file.
type setSummary struct {
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Magic     string `json:"magic"`
	Shape     []int  `json:"shape"`
	Bytes     int    `json:"bytes"`
	Histogram []int  `json:"label_histogram,omitempty"`
}

func inspectCmd() *cli.Command {
	var (
		asJSON   bool
		head     int
		maxBytes int64
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode an IDX file and print its header and contents",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
			&cli.IntFlag{Name: "head", Usage: "print the first N labels or images", Destination: &head},
			&cli.Int64Flag{Name: "max-bytes", Usage: "refuse payloads larger than this (0 = no limit)", Destination: &maxBytes},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("inspect: missing FILE argument")
			}
			log := logger.FromContext(ctx)

			set, err := idx.LoadFile(ctx, path, idx.DecodeOptions{MaxPayloadBytes: maxBytes})
			if err != nil {
				log.Error("decode failed", "path", path, "err", err)
				return err
			}
			log.Debug("decoded", "path", path, "kind", set.Kind().String(), "shape", set.Shape())

			out := cmd.Root().Writer
			summary := summarize(path, set)
			if asJSON {
				return writeJSON(out, summary)
			}
			if err := writeSummary(out, summary); err != nil {
				return err
			}
			return writeHead(out, set, head)
		},
	}
}

func summarize(path string, set *idx.DecodedSet) setSummary {
	s := setSummary{
		Path:  path,
		Kind:  set.Kind().String(),
		Magic: idx.FormatMagic(set.Kind().Magic()),
		Shape: set.Shape(),
		Bytes: set.Len(),
	}
	if set.Kind() == idx.KindLabels {
		s.Histogram = histogram(set.Bytes())
	}
	return s
}

// histogram counts label values. The result is as long as the largest label + 1.
func histogram(labels []byte) []int {
	var counts [256]int
	top := 0
	for _, l := range labels {
		counts[l]++
		top = max(top, int(l))
	}
	return append([]int(nil), counts[:top+1]...)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeSummary(w io.Writer, s setSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "path:  %s\n", s.Path)
	fmt.Fprintf(&b, "kind:  %s\n", s.Kind)
	fmt.Fprintf(&b, "magic: %s\n", s.Magic)
	fmt.Fprintf(&b, "shape: %v\n", s.Shape)
	fmt.Fprintf(&b, "bytes: %d\n", s.Bytes)
	for label, n := range s.Histogram {
		fmt.Fprintf(&b, "  label %d: %d\n", label, n)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeHead prints the first n labels, or the first n images as ASCII art.
func writeHead(w io.Writer, set *idx.DecodedSet, n int) error {
	n = min(n, set.Count())
	if n <= 0 {
		return nil
	}

	if set.Kind() == idx.KindLabels {
		labels := set.Bytes()[:n]
		_, err := fmt.Fprintf(w, "labels: %v\n", labels)
		return err
	}

	for i := 0; i < n; i++ {
		img, err := set.Image(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "image %d:\n%s", i, renderImage(img, set.Rows(), set.Columns())); err != nil {
			return err
		}
	}
	return nil
}

// shades maps pixel intensity to characters, darkest first.
const shades = " .:-=+*#%@"

func renderImage(img []byte, rows, columns int) string {
	var b strings.Builder
	b.Grow(rows * (columns + 1))
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			b.WriteByte(shades[int(img[r*columns+c])*(len(shades)-1)/255])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
