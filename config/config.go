// Package config loads the settings of the language server and the command
// line tools from defaults, a workspace YAML file and editor configuration.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/dhamidi/shaderlab/lint"
)

// Section is the key of the settings object in editor configuration.
const Section = "shaderlabLanguageServer"

// FileNames are the workspace configuration files, in lookup order.
var FileNames = []string{".shaderlab.yaml", ".shaderlab.yml"}

//go:embed schema.json
var SchemaJSON string

type Settings struct {
	DxcPath      string
	IncludePaths []string
	Defines      []string
	LintTrigger  lint.Trigger
	LintTimeout  time.Duration
}

func Default() Settings {
	return Settings{
		DxcPath:     "dxc",
		LintTrigger: lint.TriggerOnType,
		LintTimeout: 10 * time.Second,
	}
}

// LintOptions returns the linter options the settings describe.
func (s Settings) LintOptions() lint.Options {
	return lint.Options{
		DxcPath:      s.DxcPath,
		IncludePaths: slices.Clone(s.IncludePaths),
		Defines:      slices.Clone(s.Defines),
		Timeout:      s.LintTimeout,
	}
}

type rawSettings struct {
	DxcPath      *string  `json:"dxcPath"`
	IncludePaths []string `json:"includePaths"`
	Defines      []string `json:"defines"`
	LintTrigger  *string  `json:"lintTrigger"`
	LintTimeout  *string  `json:"lintTimeout"`
}

// Apply validates values against the settings schema and returns s with the
// keys present in values replaced.
func (s Settings) Apply(values map[string]any) (Settings, error) {
	normalized, err := Validate(values)
	if err != nil {
		return s, err
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return s, fmt.Errorf("failed to encode settings: %w", err)
	}
	var raw rawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("failed to decode settings: %w", err)
	}

	out := s
	if raw.DxcPath != nil {
		out.DxcPath = *raw.DxcPath
	}
	if raw.IncludePaths != nil {
		out.IncludePaths = raw.IncludePaths
	}
	if raw.Defines != nil {
		out.Defines = raw.Defines
	}
	if raw.LintTrigger != nil {
		trigger, err := lint.ParseTrigger(*raw.LintTrigger)
		if err != nil {
			return s, err
		}
		out.LintTrigger = trigger
	}
	if raw.LintTimeout != nil {
		timeout, err := time.ParseDuration(*raw.LintTimeout)
		if err != nil {
			return s, fmt.Errorf("invalid lintTimeout: %w", err)
		}
		out.LintTimeout = timeout
	}
	return out, nil
}

// ApplyYAML decodes a settings file and applies it on top of s.
func (s Settings) ApplyYAML(data []byte) (Settings, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s.Apply(values)
}

// Load reads the settings file at path on top of the defaults. Relative
// include paths are resolved against the directory of the file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := Default().ApplyYAML(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, p := range s.IncludePaths {
		if !filepath.IsAbs(p) {
			s.IncludePaths[i] = filepath.Join(dir, p)
		}
	}
	return s, nil
}

// Find returns the settings file in dir, if any.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadDir loads the settings file of dir, or the defaults when there is none.
func LoadDir(dir string) (Settings, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// FromLSP extracts the settings section from a workspace/didChangeConfiguration
// payload. Payloads that already are the section are returned as is.
func FromLSP(payload any) (map[string]any, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if section, ok := m[Section].(map[string]any); ok {
		return section, true
	}
	if _, ok := m[Section]; ok {
		return nil, false
	}
	return m, true
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(SchemaJSON), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings schema: %w", err)
	}
	const url = "https://shaderlab.invalid/settings.schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add settings schema: %w", err)
	}
	return compiler.Compile(url)
})

// ErrInvalidSettings wraps every schema violation.
var ErrInvalidSettings = errors.New("invalid settings")

// Validate checks values against the settings schema. Values are normalised
// through JSON first so YAML and editor payloads validate the same way; the
// normalised copy is returned.
func Validate(values map[string]any) (any, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]any{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := schema.Validate(normalized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return normalized, nil
}
