package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/lint"
	"github.com/dhamidi/shaderlab/shaderlab"
)

const testURI = "file:///project/shaders/test.shader"

const passShader = `Shader "Test" {
	Properties {
		_A ("a", Float) = 1
	}
	SubShader {
		Pass {
			CGPROGRAM
			float a;
			ENDCG
		}
	}
}
`

// fakeCompiler reports an error at the first line containing marker.
type fakeCompiler struct {
	mu     sync.Mutex
	runs   int
	marker string
}

func (f *fakeCompiler) run(_ context.Context, _ string, args []string) ([]byte, error) {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()

	file := args[len(args)-1]
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	for i, line := range strings.Split(string(data), "\n") {
		if f.marker != "" && strings.Contains(line, f.marker) {
			return []byte(fmt.Sprintf("%s:%d:%d: warning: unused %s", file, i+1, strings.Index(line, f.marker)+1, f.marker)), nil
		}
	}
	return nil, nil
}

func (f *fakeCompiler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

func newTestWorkspace(t *testing.T, fake *fakeCompiler, settings config.Settings) *Workspace {
	t.Helper()
	return New(t.TempDir(), settings, WithLintRunner(fake.run), WithDebounce(10*time.Millisecond))
}

func TestUpdateCachesVersions(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())

	first := w.Update(testURI, 1, passShader)
	require.NotNil(t, first.Tree)
	assert.Equal(t, "/project/shaders/test.shader", first.Path)
	assert.Same(t, first, w.Update(testURI, 1, passShader), "same version and text should reuse the document")

	second := w.Update(testURI, 2, "Shader {}")
	assert.NotSame(t, first, second)
	assert.Same(t, second, w.Update(testURI, 1, passShader), "an older version must not replace a newer one")
	assert.Same(t, second, w.Document(testURI))

	w.Close(testURI)
	assert.Nil(t, w.Document(testURI))
}

func TestHover(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())
	w.Update(testURI, 1, passShader)

	tests := []struct {
		name   string
		at     string
		want   string
		wantID string
	}{
		{"shader keyword", `Shader "Test"`, "```shaderlab\nShader \"Test\"\n```\n\nShader Declaration", shaderlab.ShaderDeclaration},
		{"block keyword", "Pass", "```shaderlab\nPass\n```\n\nPass Declaration", shaderlab.PassDeclaration},
		{"keyword pair", "CGPROGRAM", "```shaderlab\nCGPROGRAM ENDCG\n```\n\nCg Program", shaderlab.CgProgram},
		{"word in program", "float a", "```shaderlab\nfloat\n```\n\nProgram Content", shaderlab.ProgramContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := strings.Index(passShader, tt.at) + 1
			hover, ok := w.Hover(testURI, offset)
			require.True(t, ok)
			assert.Equal(t, tt.want, hover.Contents)
			assert.Equal(t, tt.wantID, hover.Node.Definition.ID)
		})
	}

	t.Run("no word", func(t *testing.T) {
		_, ok := w.Hover(testURI, len(passShader))
		assert.False(t, ok)
	})
	t.Run("unknown document", func(t *testing.T) {
		_, ok := w.Hover("file:///nowhere.shader", 0)
		assert.False(t, ok)
	})
}

func TestCompletionsSuggestChildKeywords(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())
	w.Update(testURI, 1, passShader)

	offset := strings.Index(passShader, "SubShader {") + len("SubShader {")
	items := w.Completions(testURI, offset)
	require.NotEmpty(t, items)

	assert.Equal(t, CompletionItem{Label: "Pass", Kind: CompletionKeyword, Data: shaderlab.PassDeclaration}, items[0])

	labels := map[string]string{}
	for _, item := range items {
		assert.Equal(t, CompletionKeyword, item.Kind)
		if _, seen := labels[item.Label]; !seen {
			labels[item.Label] = item.Data
		}
	}
	assert.Equal(t, shaderlab.CgProgram, labels["CGPROGRAM"])
	assert.Equal(t, shaderlab.CgProgram, labels["ENDCG"])
	assert.Equal(t, shaderlab.TagsDeclaration, labels["Tags"])
	assert.NotContains(t, labels, "Shader")
}

func TestCompletionsOfferSnippets(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())
	w.Update(testURI, 1, passShader)

	items := w.Completions(testURI, strings.Index(passShader, "_A")+1)
	require.Len(t, items, 6)
	first := items[0]
	assert.Equal(t, "_IntProperty", first.Label)
	assert.Equal(t, CompletionSnippet, first.Kind)
	assert.Equal(t, shaderlab.Property, first.Data)
	assert.Equal(t, `_IntProperty ("Integer", Int) = 0`, first.InsertText)
	assert.Equal(t, "```shaderlab\n_IntProperty (\"Integer\", Int) = 0\n```\nInteger Property", first.Documentation)
}

func TestResolveCompletion(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())

	detail, doc, ok := w.ResolveCompletion(shaderlab.PassDeclaration)
	require.True(t, ok)
	assert.Equal(t, shaderlab.PassDeclaration, detail)
	assert.Contains(t, doc, "`Pass`")

	_, _, ok = w.ResolveCompletion("nothing")
	assert.False(t, ok)
}

func TestStructuralDiagnostics(t *testing.T) {
	w := newTestWorkspace(t, &fakeCompiler{}, config.Default())
	w.Update(testURI, 1, "Shader { }")

	diagnostics := w.Diagnostics(testURI)
	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	assert.Equal(t, "Shader requires an identifier.", d.Message)
	assert.Equal(t, lint.SeverityError, d.Severity)
	assert.Equal(t, Source, d.Source)
	assert.Greater(t, d.End, d.Start)

	assert.Nil(t, w.Diagnostics("file:///nowhere.shader"))
}

func TestRequestLintPublishesResults(t *testing.T) {
	fake := &fakeCompiler{marker: "float a;"}
	w := newTestWorkspace(t, fake, config.Default())
	published := make(chan string, 4)
	w.OnDiagnostics(func(uri string) { published <- uri })

	w.Update(testURI, 1, passShader)
	w.RequestLint(testURI, lint.TriggerOnType)
	w.RequestLint(testURI, lint.TriggerOnType)

	select {
	case uri := <-published:
		assert.Equal(t, testURI, uri)
	case <-time.After(5 * time.Second):
		t.Fatal("no diagnostics published")
	}
	assert.Equal(t, 1, fake.count(), "debounced requests should lint once")

	var fromLinter []Diagnostic
	for _, d := range w.Diagnostics(testURI) {
		if d.Source == lint.Source {
			fromLinter = append(fromLinter, d)
		}
	}
	require.Len(t, fromLinter, 1)
	assert.Equal(t, strings.Index(passShader, "float a;"), fromLinter[0].Start)
	assert.Equal(t, fromLinter[0].Start+1, fromLinter[0].End)
	assert.Equal(t, lint.SeverityWarning, fromLinter[0].Severity)

	w.Update(testURI, 2, passShader+"\n")
	for _, d := range w.Diagnostics(testURI) {
		assert.NotEqual(t, lint.Source, d.Source, "results of an older version must not be reported")
	}
}

func TestRequestLintHonoursTrigger(t *testing.T) {
	tests := []struct {
		name    string
		trigger lint.Trigger
		event   lint.Trigger
		runs    bool
	}{
		{"onType on edit", lint.TriggerOnType, lint.TriggerOnType, true},
		{"onType on save", lint.TriggerOnType, lint.TriggerOnSave, true},
		{"onSave on edit", lint.TriggerOnSave, lint.TriggerOnType, false},
		{"onSave on save", lint.TriggerOnSave, lint.TriggerOnSave, true},
		{"never on save", lint.TriggerNever, lint.TriggerOnSave, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.Default()
			settings.LintTrigger = tt.trigger
			fake := &fakeCompiler{}
			w := newTestWorkspace(t, fake, settings)
			done := make(chan struct{}, 1)
			w.OnDiagnostics(func(string) { done <- struct{}{} })

			w.Update(testURI, 1, passShader)
			w.RequestLint(testURI, tt.event)

			select {
			case <-done:
				assert.True(t, tt.runs, "lint should not have run")
			case <-time.After(200 * time.Millisecond):
				assert.False(t, tt.runs, "lint should have run")
			}
		})
	}
}

func TestSetSettingsDropsLintResults(t *testing.T) {
	fake := &fakeCompiler{marker: "float a;"}
	w := newTestWorkspace(t, fake, config.Default())
	w.Update(testURI, 1, passShader)

	diagnostics, err := w.Lint(context.Background(), testURI)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Len(t, w.Diagnostics(testURI), 1)

	settings := config.Default()
	settings.Defines = []string{"X=1"}
	w.SetSettings(settings)
	assert.Equal(t, []string{"X=1"}, w.Settings().Defines)
	assert.Empty(t, w.Diagnostics(testURI))
}

func TestScanAllSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "a.shader"), []byte(passShader), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "b.shader"), []byte(passShader), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("Shader"), 0o644))

	w := New(root, config.Default())
	require.NoError(t, w.ScanAll())

	uris := w.URIs()
	require.Len(t, uris, 1)
	assert.Equal(t, PathToURI(filepath.Join(root, "sub", "a.shader")), uris[0])

	w.RemoveFile(filepath.Join(root, "sub", "a.shader"))
	assert.Empty(t, w.URIs())
}

func TestScanFileVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.shader")
	require.NoError(t, os.WriteFile(path, []byte(passShader), 0o644))
	w := New(filepath.Dir(path), config.Default())

	first, err := w.ScanFile(path)
	require.NoError(t, err)
	assert.Equal(t, int32(1), first.Version)

	again, err := w.ScanFile(path)
	require.NoError(t, err)
	assert.Same(t, first, again, "an unchanged file should keep its document")

	// Modification times past 2038 do not fit an int32 and must not matter.
	require.NoError(t, os.WriteFile(path, []byte("Shader {}"), 0o644))
	future := time.Date(2040, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := w.ScanFile(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), second.Version)
	assert.Equal(t, "Shader {}", second.Text)
	assert.Same(t, second, w.Document(PathToURI(path)))
}

func TestURIConversion(t *testing.T) {
	path, err := URIToPath("file:///home/user/My%20Shaders/a.shader")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/user/My Shaders/a.shader"), path)

	path, err = URIToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)

	assert.Equal(t, "file:///home/user/My%20Shaders/a.shader", PathToURI("/home/user/My Shaders/a.shader"))
}
