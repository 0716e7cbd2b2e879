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
	ver "github.com/NVIDIA/arch-stack/pkg/version"
)

type flagsResult struct {
	header.Header `yaml:",inline"`

	Target   string `json:"target" yaml:"target"`
	Compiler string `json:"compiler" yaml:"compiler"`
	Version  string `json:"version" yaml:"version"`
	Flags    string `json:"flags" yaml:"flags"`
}

func flagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "flags",
		Usage: "resolve compiler optimization flags for a target",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "target microarchitecture name (e.g., zen3)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "compiler",
				Aliases:  []string{"c"},
				Usage:    "compiler name (e.g., gcc, clang)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "compiler-version",
				Usage:    "compiler release version (e.g., 11.2)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rawVersion := cmd.String("compiler-version")
			v, err := ver.Parse(rawVersion)
			if err != nil {
				return fmt.Errorf("compiler-version: %q: %w", rawVersion, err)
			}

			g, err := march.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			flags, err := march.ResolveFlags(g, cmd.String("target"), cmd.String("compiler"), v)
			if err != nil {
				return err
			}

			result := flagsResult{
				Target:   cmd.String("target"),
				Compiler: cmd.String("compiler"),
				Version:  v.String(),
				Flags:    flags,
			}
			result.Set("FlagResolution")

			return writeResult(ctx, cmd, result)
		},
	}
}
