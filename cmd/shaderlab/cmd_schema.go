package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/shaderlab"
)

func newSchemaCmd() *cobra.Command {
	var settings bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the ShaderLab block schema",
		Long:  "Print every block definition with its keywords, matching strategy and allowed children.\nWith --settings, print the JSON schema of the configuration file instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if settings {
				fmt.Fprint(out, config.SchemaJSON)
				return nil
			}

			reg := shaderlab.Registry()
			for _, d := range reg.Definitions() {
				keywords := strings.Join(d.Keywords(), " ... ")
				if keywords == "" {
					keywords = "-"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", d.ID, d.Strategy, keywords)
				for _, child := range reg.Children(d) {
					fmt.Fprintf(out, "\t%s\n", child.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&settings, "settings", false, "print the settings schema")

	return cmd
}
