// Package main provides the mnistio CLI for inspecting and loading IDX datasets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/dmorle/TF-MLP/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	var (
		configFile string
		logLevel   string
		logFormat  string
	)

	return &cli.Command{
		Name:  "mnistio",
		Usage: "Inspect and load IDX (MNIST) dataset files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.yaml",
				Value:       configPath(),
				Destination: &configFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Sources:     cli.EnvVars("MNISTIO_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (text, json)",
				Value:       "text",
				Destination: &logFormat,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
				logLevel = cfg.LogLevel
			}
			if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
				logFormat = cfg.LogFormat
			}

			log, err := logger.Open(cmd.Root().ErrWriter, logFormat, logger.ParseLevel(logLevel))
			if err != nil {
				return ctx, err
			}
			log = log.With("run", uuid.NewString())

			ctx = logger.WithContext(ctx, log)
			return withConfig(ctx, cfg), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			loadCmd(),
			versionCmd(),
		},
	}
}
