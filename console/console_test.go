package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	saved := styled
	styled = func() bool { return false }
	t.Cleanup(func() { styled = saved })
}

func TestFormatDiagnostic(t *testing.T) {
	plain(t)

	got := FormatDiagnostic(Diagnostic{
		File:     "shaders/a.shader",
		Line:     12,
		Column:   2,
		Width:    4,
		Severity: "error",
		Source:   "shaderlab",
		Message:  "'}' expected.",
		Context:  "\tPass {",
	})

	want := "shaders/a.shader:12:2: error: '}' expected. [shaderlab]\n" +
		"12 |  Pass {\n" +
		"      ^^^^\n"
	assert.Equal(t, want, got)
}

func TestFormatDiagnosticWithoutContext(t *testing.T) {
	plain(t)

	got := FormatDiagnostic(Diagnostic{Line: 3, Column: 1, Severity: "warning", Message: "careful"})
	assert.Equal(t, "warning: careful\n", got)
}

func TestFormatDiagnosticColumnPastLine(t *testing.T) {
	plain(t)

	got := FormatDiagnostic(Diagnostic{Line: 1, Column: 40, Message: "late", Context: "Shader"})
	assert.Equal(t, "error: late\n1 | Shader\n", got)
}

func TestRelativePath(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)

	assert.Equal(t, "x.shader", RelativePath("x.shader"))
	assert.Equal(t, filepath.Join("a", "b.shader"), RelativePath(filepath.Join(wd, "a", "b.shader")))
	outside := filepath.Join(filepath.Dir(wd), "elsewhere.shader")
	assert.Equal(t, outside, RelativePath(outside))
}

func TestMessages(t *testing.T) {
	plain(t)

	assert.True(t, strings.HasSuffix(FormatSuccessMessage("ok"), "ok"))
	assert.True(t, strings.HasSuffix(FormatInfoMessage("info"), "info"))
	assert.True(t, strings.HasSuffix(FormatWarningMessage("warn"), "warn"))
	assert.True(t, strings.HasSuffix(FormatErrorMessage("bad"), "bad"))
}

func TestSpinner(t *testing.T) {
	s := NewSpinner("checking")
	s.Start()
	s.UpdateMessage("still checking")
	s.Stop()
}
