package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/shaderlab/syntax"
)

// ErrExecutableNotFound is returned when the compiler cannot be started.
// The linter stays disabled afterwards.
var ErrExecutableNotFound = errors.New("dxc executable not found")

// DebounceDelay is how long edits must settle before an onType lint.
const DebounceDelay = 250 * time.Millisecond

const maxConcurrentRuns = 4

var baseArgs = []string{"-T", "lib_6_4", "-Od", "-Ges", "-D", "VSCODE_HLSL_PREVIEW"}

type Options struct {
	DxcPath      string
	IncludePaths []string
	Defines      []string
	// Timeout bounds one Lint call; zero means no bound.
	Timeout time.Duration
}

// Runner runs the compiler and returns what it printed on stderr. A
// compiler that ran and reported errors is not a Runner error.
type Runner func(ctx context.Context, executable string, args []string) ([]byte, error)

type Linter struct {
	opts     Options
	run      Runner
	tempDir  string
	log      commonlog.Logger
	disabled atomic.Bool
}

type Option func(*Linter)

func WithRunner(r Runner) Option {
	return func(l *Linter) {
		l.run = r
	}
}

// WithTempDir sets where temporary program files are written.
func WithTempDir(dir string) Option {
	return func(l *Linter) {
		l.tempDir = dir
	}
}

func New(opts Options, options ...Option) *Linter {
	if opts.DxcPath == "" {
		opts.DxcPath = "dxc"
	}
	l := &Linter{
		opts: opts,
		run:  execRunner,
		log:  commonlog.GetLogger("shaderlab.lint"),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Disabled reports whether the compiler was found missing.
func (l *Linter) Disabled() bool {
	return l.disabled.Load()
}

// LintTree compiles every HLSL and Cg block of a ShaderLab tree. path is the
// document's file path; its directory is searched for includes.
func (l *Linter) LintTree(ctx context.Context, path string, root *syntax.Node) ([]Diagnostic, error) {
	return l.Lint(ctx, path, Blocks(root))
}

// Lint compiles each block separately and returns the diagnostics of all of
// them sorted by offset.
func (l *Linter) Lint(ctx context.Context, path string, blocks []Block) ([]Diagnostic, error) {
	if l.disabled.Load() {
		return nil, ErrExecutableNotFound
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	type result struct {
		diagnostics []Diagnostic
		err         error
	}
	p := pool.NewWithResults[result]().WithMaxGoroutines(maxConcurrentRuns)
	for _, block := range blocks {
		p.Go(func() result {
			diagnostics, err := l.lintBlock(ctx, path, block)
			return result{diagnostics: diagnostics, err: err}
		})
	}

	var all []Diagnostic
	var errs []error
	for _, r := range p.Wait() {
		all = append(all, r.diagnostics...)
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})

	err := errors.Join(errs...)
	if errors.Is(err, ErrExecutableNotFound) {
		if !l.disabled.Swap(true) {
			l.log.Errorf("cannot lint: the %s program was not found", l.opts.DxcPath)
		}
		return nil, ErrExecutableNotFound
	}
	return all, err
}

func (l *Linter) lintBlock(ctx context.Context, path string, block Block) ([]Diagnostic, error) {
	in := parseInputs(block.Content)

	var header strings.Builder
	for _, decl := range in.declarations {
		header.WriteString(decl + "\n")
	}
	for _, part := range block.Prelude {
		header.WriteString(part + "\n")
	}
	lineOffset := strings.Count(header.String(), "\n")

	f, err := os.CreateTemp(l.tempDir, "shaderlab-*.hlsl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	filename := f.Name()
	defer os.Remove(filename)

	_, err = io.WriteString(f, header.String()+block.Content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}

	args := l.args(path, in, filename)
	l.log.Debugf("running %s %s", l.opts.DxcPath, strings.Join(args, " "))
	output, err := l.run(ctx, l.opts.DxcPath, args)
	if err != nil {
		return nil, err
	}
	return newOutputParser(filename, block, lineOffset).parse(string(output)), nil
}

func (l *Linter) args(path string, in inputs, filename string) []string {
	args := append([]string(nil), baseArgs...)
	for _, define := range l.opts.Defines {
		args = append(args, "-D", define)
	}
	for _, define := range in.defines {
		args = append(args, "-D", define)
	}
	if path != "" {
		args = append(args, "-I", filepath.Dir(path))
	}
	for _, dir := range l.opts.IncludePaths {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		args = append(args, "-I", dir)
	}
	return append(args, filename)
}

func execRunner(ctx context.Context, executable string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, executable, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", executable, ctx.Err())
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.As(err, &exitErr):
		return stderr.Bytes(), nil
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrExecutableNotFound, executable)
	default:
		return nil, fmt.Errorf("failed to run %s: %w", executable, err)
	}
}
