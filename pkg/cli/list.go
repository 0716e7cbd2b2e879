/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/NVIDIA/arch-stack/pkg/header"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

type listedTarget struct {
	Name       string `json:"name" yaml:"name"`
	Vendor     string `json:"vendor" yaml:"vendor"`
	Family     string `json:"family" yaml:"family"`
	Generation int    `json:"generation,omitempty" yaml:"generation,omitempty"`
}

type listResult struct {
	header.Header `yaml:",inline"`

	Targets []listedTarget `json:"targets" yaml:"targets"`
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "enumerate the known microarchitecture targets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "family",
				Usage: "only list targets under this family root (e.g., x86_64)",
			},
			&cli.StringFlag{
				Name:  "vendor",
				Usage: "only list targets with this vendor tag",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := march.Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			family := cmd.String("family")
			if family != "" && g.Lookup(family) == nil {
				return fmt.Errorf("unknown family %q", family)
			}
			vendor := cmd.String("vendor")

			targets := make([]listedTarget, 0, g.Len())
			for _, node := range g.Nodes() {
				if family != "" && node.Family().Name != family {
					continue
				}
				if vendor != "" && node.Vendor != vendor {
					continue
				}
				targets = append(targets, listedTarget{
					Name:       node.Name,
					Vendor:     node.Vendor,
					Family:     node.Family().Name,
					Generation: node.Generation,
				})
			}

			// Numeric collation keeps versioned names in human order
			// (x86_64_v2 before x86_64_v10).
			c := collate.New(language.English, collate.Numeric)
			sort.Slice(targets, func(i, j int) bool {
				return c.CompareString(targets[i].Name, targets[j].Name) < 0
			})

			result := listResult{Targets: targets}
			result.Set("TargetList")

			return writeResult(ctx, cmd, result)
		},
	}
}
