package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "shaderlab",
		Short:        "Structural tooling for Unity ShaderLab files",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
