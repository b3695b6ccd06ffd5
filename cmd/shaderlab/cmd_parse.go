package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/shaderlab/format"
	"github.com/dhamidi/shaderlab/shaderlab"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a ShaderLab file and dump its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read shader file: %w", err)
			}

			encoder, ok := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if !ok {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			text := string(data)
			if err := encoder.Encode(text, shaderlab.Parse(text)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, lines, tree)")

	return cmd
}
