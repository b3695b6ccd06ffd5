package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/console"
	"github.com/dhamidi/shaderlab/workspace"
)

func newWatchCmd() *cobra.Command {
	var lintEnabled bool

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check ShaderLab files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, dir, lintEnabled)
		},
	}

	cmd.Flags().BoolVar(&lintEnabled, "lint", false, "compile HLSL program blocks with dxc")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, dir string, lintEnabled bool) error {
	settings, err := config.LoadDir(dir)
	if err != nil {
		return err
	}
	ws := workspace.New(dir, settings)
	out := cmd.OutOrStdout()

	check := func(uri string) {
		doc := ws.Document(uri)
		if doc == nil {
			return
		}
		if lintEnabled {
			if _, err := ws.Lint(ctx, uri); err != nil {
				fmt.Fprintln(out, console.FormatWarningMessage(err.Error()))
			}
		}
		diagnostics := ws.Diagnostics(uri)
		if len(diagnostics) == 0 {
			fmt.Fprintln(out, console.FormatSuccessMessage(console.RelativePath(doc.Path)))
			return
		}
		report(out, doc, diagnostics)
	}

	if err := ws.ScanAll(); err != nil {
		return err
	}
	uris := ws.URIs()
	sort.Strings(uris)
	for _, uri := range uris {
		check(uri)
	}

	shaders, err := workspace.NewWatcher(dir, workspace.MatchExtension(workspace.Extension), func(e workspace.WatchEvent) {
		if e.Removed {
			ws.RemoveFile(e.Path)
			fmt.Fprintln(out, console.FormatInfoMessage("removed "+console.RelativePath(e.Path)))
			return
		}
		doc, err := ws.ScanFile(e.Path)
		if err != nil {
			fmt.Fprintln(out, console.FormatErrorMessage(err.Error()))
			return
		}
		check(doc.URI)
	})
	if err != nil {
		return err
	}
	if err := shaders.Start(); err != nil {
		return err
	}
	defer shaders.Stop()

	settingsWatcher, err := workspace.NewWatcher(dir, workspace.MatchNames(config.FileNames...), func(e workspace.WatchEvent) {
		settings, err := config.LoadDir(dir)
		if err != nil {
			fmt.Fprintln(out, console.FormatErrorMessage(err.Error()))
			return
		}
		ws.SetSettings(settings)
		fmt.Fprintln(out, console.FormatInfoMessage("reloaded "+filepath.Base(e.Path)))
	})
	if err != nil {
		return err
	}
	if err := settingsWatcher.Start(); err != nil {
		return err
	}
	defer settingsWatcher.Stop()

	fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("Watching %s for changes, press Ctrl+C to stop", dir)))
	<-ctx.Done()
	return nil
}
