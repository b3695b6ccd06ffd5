package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/shaderlab/lint"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "dxc", s.DxcPath)
	assert.Empty(t, s.IncludePaths)
	assert.Equal(t, lint.TriggerOnType, s.LintTrigger)
	assert.Equal(t, 10*time.Second, s.LintTimeout)
}

func TestApplyYAML(t *testing.T) {
	data := []byte(`
dxcPath: /opt/dxc/bin/dxc
includePaths:
  - /unity/CGIncludes
defines:
  - UNITY_COLORSPACE_GAMMA
  - SHADER_API_D3D11=1
lintTrigger: onSave
lintTimeout: 2500ms
`)
	s, err := Default().ApplyYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "/opt/dxc/bin/dxc", s.DxcPath)
	assert.Equal(t, []string{"/unity/CGIncludes"}, s.IncludePaths)
	assert.Equal(t, []string{"UNITY_COLORSPACE_GAMMA", "SHADER_API_D3D11=1"}, s.Defines)
	assert.Equal(t, lint.TriggerOnSave, s.LintTrigger)
	assert.Equal(t, 2500*time.Millisecond, s.LintTimeout)
}

func TestApplyKeepsUnsetKeys(t *testing.T) {
	base := Default()
	base.IncludePaths = []string{"/a"}

	s, err := base.Apply(map[string]any{"dxcPath": "dxc-1.8"})
	require.NoError(t, err)
	assert.Equal(t, "dxc-1.8", s.DxcPath)
	assert.Equal(t, []string{"/a"}, s.IncludePaths)
	assert.Equal(t, base.LintTimeout, s.LintTimeout)
}

func TestApplyRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"unknown key", map[string]any{"dxc": "x"}},
		{"empty path", map[string]any{"dxcPath": ""}},
		{"bad trigger", map[string]any{"lintTrigger": "always"}},
		{"bad define", map[string]any{"defines": []any{"1BAD"}}},
		{"bad timeout", map[string]any{"lintTimeout": "soon"}},
		{"include paths not a list", map[string]any{"includePaths": "/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Default().Apply(tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.Equal(t, Default(), s)
		})
	}
}

func TestApplyYAMLSyntaxError(t *testing.T) {
	_, err := Default().ApplyYAML([]byte("dxcPath: [unclosed"))
	assert.Error(t, err)
}

func TestLoadResolvesRelativeIncludePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".shaderlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("includePaths: [includes, /abs]\n"), 0o644))

	found, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, path, found)

	s, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "includes"), "/abs"}, s.IncludePaths)
}

func TestLoadDirWithoutFile(t *testing.T) {
	s, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".shaderlab.yml")
	require.NoError(t, os.WriteFile(path, []byte("lintTrigger: sometimes\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestFromLSP(t *testing.T) {
	section, ok := FromLSP(map[string]any{
		Section: map[string]any{"dxcPath": "x"},
	})
	require.True(t, ok)
	assert.Equal(t, "x", section["dxcPath"])

	section, ok = FromLSP(map[string]any{"dxcPath": "y"})
	require.True(t, ok)
	assert.Equal(t, "y", section["dxcPath"])

	_, ok = FromLSP(nil)
	assert.False(t, ok)

	_, ok = FromLSP(map[string]any{Section: "nope"})
	assert.False(t, ok)
}

func TestLintOptions(t *testing.T) {
	s := Default()
	s.IncludePaths = []string{"/inc"}
	s.Defines = []string{"A=1"}

	opts := s.LintOptions()
	assert.Equal(t, "dxc", opts.DxcPath)
	assert.Equal(t, []string{"/inc"}, opts.IncludePaths)
	assert.Equal(t, []string{"A=1"}, opts.Defines)
	assert.Equal(t, 10*time.Second, opts.Timeout)

	opts.IncludePaths[0] = "changed"
	assert.Equal(t, "/inc", s.IncludePaths[0])
}
