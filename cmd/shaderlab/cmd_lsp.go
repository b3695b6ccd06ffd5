package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/shaderlab/workspace"
)

func newLSPCmd() *cobra.Command {
	var verbosity int
	var logFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)

			server := workspace.NewLSPServer(version)
			return server.RunStdio()
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}
