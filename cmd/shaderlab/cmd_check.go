package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/dhamidi/shaderlab/console"
	"github.com/dhamidi/shaderlab/lint"
	"github.com/dhamidi/shaderlab/workspace"
)

type checkOptions struct {
	lint       bool
	configPath string
	jobs       int
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report structural errors in ShaderLab files",
		Long:  "Parse every given file, and every .shader file below the given directories, and print their diagnostics.\nWith --lint, program blocks are also compiled with dxc. Exits with status 1 when an error is found.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.lint, "lint", false, "compile HLSL program blocks with dxc")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "settings file (default: .shaderlab.yaml in the current directory)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 8, "number of files checked in parallel")

	return cmd
}

type checkResult struct {
	doc         *workspace.Document
	diagnostics []workspace.Diagnostic
	err         error
}

func runCheck(ctx context.Context, cmd *cobra.Command, args []string, opts checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	settings, err := loadSettings(opts.configPath, ".")
	if err != nil {
		return err
	}
	ws := workspace.New(".", settings)

	spinner := console.NewSpinner(fmt.Sprintf("Checking %d files...", len(files)))
	spinner.Start()

	var done atomic.Int32
	progress := func() {
		spinner.UpdateMessage(fmt.Sprintf("Checking %d files... (%d done)", len(files), done.Add(1)))
	}

	p := pool.NewWithResults[checkResult]().WithMaxGoroutines(max(1, opts.jobs))
	for _, file := range files {
		p.Go(func() checkResult {
			defer progress()
			doc, err := ws.ScanFile(file)
			if err != nil {
				return checkResult{err: err}
			}
			if opts.lint {
				if _, err := ws.Lint(ctx, doc.URI); err != nil {
					return checkResult{doc: doc, diagnostics: ws.Diagnostics(doc.URI), err: err}
				}
			}
			return checkResult{doc: doc, diagnostics: ws.Diagnostics(doc.URI)}
		})
	}
	results := p.Wait()
	spinner.Stop()

	sort.Slice(results, func(i, j int) bool {
		return resultPath(results[i]) < resultPath(results[j])
	})

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	errorCount, missingCompiler := 0, false
	for _, r := range results {
		if r.doc != nil {
			errorCount += report(out, r.doc, r.diagnostics)
		}
		switch {
		case r.err == nil:
		case errors.Is(r.err, lint.ErrExecutableNotFound):
			missingCompiler = true
		default:
			errorCount++
			fmt.Fprintln(errOut, console.FormatErrorMessage(r.err.Error()))
		}
	}
	if missingCompiler {
		fmt.Fprintln(errOut, console.FormatWarningMessage(fmt.Sprintf("%s not found, program blocks were not linted", settings.DxcPath)))
	}

	if errorCount > 0 {
		return fmt.Errorf("%d error(s) in %d file(s)", errorCount, len(files))
	}
	fmt.Fprintln(errOut, console.FormatSuccessMessage(fmt.Sprintf("%d file(s) checked", len(files))))
	return nil
}

func resultPath(r checkResult) string {
	if r.doc == nil {
		return ""
	}
	return r.doc.Path
}

// collectFiles expands directories to the .shader files below them,
// skipping hidden directories. Files named explicitly are always kept.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == workspace.Extension {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
