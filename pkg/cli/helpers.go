/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/arch-stack/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// writeResult serializes a result to the destination selected by the
// --output and --format flags, closing file destinations afterwards.
func writeResult(ctx context.Context, cmd *cli.Command, result any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	if closer, ok := w.(serializer.Closer); ok {
		defer closer.Close()
	}

	return w.Serialize(ctx, result)
}
