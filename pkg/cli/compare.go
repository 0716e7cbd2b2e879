/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arch-stack/pkg/header"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

type comparisonResult struct {
	header.Header `yaml:",inline"`

	A          string         `json:"a" yaml:"a"`
	B          string         `json:"b" yaml:"b"`
	Ordering   march.Ordering `json:"ordering" yaml:"ordering"`
	Compatible bool           `json:"compatible" yaml:"compatible"`
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "order two microarchitectures in the specialization hierarchy",
		ArgsUsage: "A B",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("expected exactly two target names, got %d", cmd.NArg())
			}
			a, b := cmd.Args().Get(0), cmd.Args().Get(1)

			g, err := march.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			ord, err := march.Compare(g, a, b)
			if err != nil {
				return err
			}

			result := comparisonResult{
				A:          a,
				B:          b,
				Ordering:   ord,
				Compatible: ord == march.Equal || ord == march.AncestorOf,
			}
			result.Set("Comparison")

			return writeResult(ctx, cmd, result)
		},
	}
}
