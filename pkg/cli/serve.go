/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arch-stack/pkg/march"
	"github.com/NVIDIA/arch-stack/pkg/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "expose detection and the dataset over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "listen port (overrides the PORT environment variable)",
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address (default: all interfaces)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := march.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			cfg := server.DefaultConfig()
			if port := cmd.Int("port"); port != 0 {
				cfg.Port = int(port)
			}
			if addr := cmd.String("address"); addr != "" {
				cfg.Address = addr
			}
			cfg.LogLevel = cmd.String("log-level")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, g).Run(ctx)
		},
	}
}
