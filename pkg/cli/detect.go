/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arch-stack/pkg/detector"
	"github.com/NVIDIA/arch-stack/pkg/header"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

type detectionResult struct {
	header.Header `yaml:",inline"`

	Name       string           `json:"name" yaml:"name"`
	Vendor     string           `json:"vendor" yaml:"vendor"`
	Family     string           `json:"family" yaml:"family"`
	Generation int              `json:"generation,omitempty" yaml:"generation,omitempty"`
	Features   []string         `json:"features" yaml:"features"`
	Signature  *march.Signature `json:"signature,omitempty" yaml:"signature,omitempty"`
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "label the host CPU microarchitecture",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "signature",
				Usage: "include the raw probed signature in the output",
			},
			&cli.StringFlag{
				Name:  "cpuinfo",
				Usage: "label a captured cpuinfo file instead of the live host",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := march.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			var opts []detector.Option
			if path := cmd.String("cpuinfo"); path != "" {
				f := detector.NewDefaultFactory(g)
				f.CPUInfoPath = path
				opts = append(opts, detector.WithProbes(f.CreateCPUInfoProbe()))
			}

			best, sig, err := detector.New(g, opts...).Host(ctx)
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}

			result := detectionResult{
				Name:       best.Name,
				Vendor:     best.Vendor,
				Family:     best.Family().Name,
				Generation: best.Generation,
				Features:   best.Features.Sorted(),
			}
			result.Set("Detection")
			if cmd.Bool("signature") {
				result.Signature = sig
			}

			return writeResult(ctx, cmd, result)
		},
	}
}
