package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dmorle/TF-MLP/internal/logger"
	"github.com/dmorle/TF-MLP/internal/mnist"
)

// splitSummary is the printed description of a loaded split.
type splitSummary struct {
	Split      string   `json:"split"`
	Images     string   `json:"images"`
	Labels     string   `json:"labels"`
	Samples    int      `json:"samples"`
	Rows       int      `json:"rows"`
	Columns    int      `json:"columns"`
	Histogram  []int    `json:"label_histogram"`
	MeanPixel  *float64 `json:"mean_pixel,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

func loadCmd() *cli.Command {
	var (
		dataDir   string
		splitName string
		normalize bool
		asJSON    bool
	)

	return &cli.Command{
		Name:  "load",
		Usage: "Load a train or test split and print a summary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "data-dir",
				Aliases:     []string{"d"},
				Usage:       "directory holding the *-ubyte files",
				Value:       "./data",
				Sources:     cli.EnvVars("MNISTIO_DATA_DIR"),
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "split",
				Aliases:     []string{"s"},
				Usage:       "split to load (train, test)",
				Value:       "train",
				Destination: &splitName,
			},
			&cli.BoolFlag{Name: "normalize", Usage: "scale pixels to [0, 1] and report the mean", Destination: &normalize},
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cfg := configFrom(ctx); cfg.DataDir != "" && !cmd.IsSet("data-dir") {
				dataDir = cfg.DataDir
			}
			split, err := mnist.ParseSplit(splitName)
			if err != nil {
				return err
			}
			log := logger.FromContext(ctx).With("split", split.String(), "data_dir", dataDir)

			start := time.Now()
			ds, err := mnist.Load(ctx, dataDir, split)
			if err != nil {
				log.Error("load failed", "err", err)
				return err
			}
			defer ds.Release()

			files := mnist.FilesFor(dataDir, split)
			summary := splitSummary{
				Split:     split.String(),
				Images:    files.Images,
				Labels:    files.Labels,
				Samples:   ds.NumSamples(),
				Rows:      ds.Rows(),
				Columns:   ds.Columns(),
				Histogram: histogram(ds.Labels.AsUint8()),
			}

			if normalize {
				pixels, err := mnist.Normalize(ds.Images)
				if err != nil {
					return err
				}
				m := mean(pixels.AsFloat32())
				summary.MeanPixel = &m
				pixels.Release()
			}
			summary.DurationMS = time.Since(start).Milliseconds()
			log.Info("loaded", "samples", summary.Samples, "duration_ms", summary.DurationMS)

			out := cmd.Root().Writer
			if asJSON {
				return writeJSON(out, summary)
			}
			return writeSplitSummary(out, summary)
		},
	}
}

func mean(values []float32) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

func writeSplitSummary(w io.Writer, s splitSummary) error {
	_, err := fmt.Fprintf(w,
		"split:   %s\nimages:  %s\nlabels:  %s\nsamples: %d\nimage:   %dx%d\ncounts:  %v\n",
		s.Split, s.Images, s.Labels, s.Samples, s.Rows, s.Columns, s.Histogram)
	if err != nil {
		return err
	}
	if s.MeanPixel != nil {
		_, err = fmt.Fprintf(w, "mean:    %.4f\n", *s.MeanPixel)
	}
	return err
}
