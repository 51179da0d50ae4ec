package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Output.Format != OutputFormatText {
		t.Errorf("Default format = %s, want text", cfg.Output.Format)
	}
	if cfg.Output.Sort != SortOrderSource {
		t.Errorf("Default sort = %s, want source", cfg.Output.Sort)
	}
	if !slices.Equal(cfg.Theme.Include, []string{"**/*.css"}) {
		t.Errorf("Default include = %q", cfg.Theme.Include)
	}
	if cfg.Theme.CacheSize < 1 {
		t.Errorf("CacheSize = %d, want positive", cfg.Theme.CacheSize)
	}
	// template must survive expansion untouched
	if !strings.Contains(cfg.Output.Template, "{{ .Name }}") {
		t.Errorf("Output template was expanded: %q", cfg.Output.Template)
	}
	// we are running under go test
	if cfg.Logging.ConsoleLogger.Level != "none" {
		t.Errorf("Console level = %q, want none", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, `version: 1
engine:
  max_depth: 8
  strict: true
theme:
  include: ["tokens/*.css", "themes/**/*.css"]
  exclude: ["**/legacy/**"]
  cache_size: 4
output:
  format: json
  sort: natural
  indent: 4
logging:
  console:
    level: warn
  file:
    level: debug
    destination: `+filepath.Join(tmpDir, "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(tmpDir, "test-report.zip")+`
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Engine.MaxDepth != 8 || !cfg.Engine.Strict {
		t.Errorf("Engine = %+v", cfg.Engine)
	}
	if len(cfg.Theme.Include) != 2 || cfg.Theme.Include[1] != "themes/**/*.css" {
		t.Errorf("Include = %q", cfg.Theme.Include)
	}
	if cfg.Theme.CacheSize != 4 {
		t.Errorf("CacheSize = %d, want 4", cfg.Theme.CacheSize)
	}
	if cfg.Output.Format != OutputFormatJson {
		t.Errorf("Format = %s, want json", cfg.Output.Format)
	}
	if cfg.Output.Sort != SortOrderNatural {
		t.Errorf("Sort = %s, want natural", cfg.Output.Sort)
	}
	if cfg.Output.Indent != 4 {
		t.Errorf("Indent = %d, want 4", cfg.Output.Indent)
	}
	if cfg.Logging.ConsoleLogger.Level != "warn" {
		t.Errorf("Console level = %q, want warn", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `version: 1
engine:
  strict: true
  invalid indent
`)
	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	configPath := writeConfig(t, `version: 1
unknown_field: value
`)
	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_InvalidEnum(t *testing.T) {
	configPath := writeConfig(t, `version: 1
output:
  format: xml
`)
	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Fatal("Expected error for unknown format")
	}
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"negative depth", "version: 1\nengine:\n  max_depth: -1\n"},
		{"empty cache", "version: 1\ntheme:\n  cache_size: 0\n"},
		{"empty pattern", "version: 1\ntheme:\n  include: [\"\"]\n"},
		{"console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	configPath := writeConfig(t, `version: 1
engine:
  strict: true
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if !cfg.Engine.Strict {
		t.Error("Expected Strict to be true from config file")
	}
	if len(cfg.Theme.Include) == 0 || cfg.Theme.CacheSize == 0 {
		t.Error("Theme should keep default values")
	}
	if len(cfg.Output.Template) == 0 {
		t.Error("Output template should keep default value")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Engine:  EngineConfig{MaxDepth: 12},
		Output: OutputConfig{
			Format: OutputFormatYaml,
			Sort:   SortOrderNatural,
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "format: yaml") {
		t.Errorf("enum must be dumped by name:\n%s", data)
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version || cfg2.Engine.MaxDepth != 12 {
		t.Errorf("Mismatch after dump/load: got %+v", cfg2)
	}
	if cfg2.Output.Sort != SortOrderNatural {
		t.Errorf("Sort = %s, want natural", cfg2.Output.Sort)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}
		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestOutputConfig_OutputTemplate(t *testing.T) {
	inline := OutputConfig{Template: "{{ len .Tokens }}", TemplatePath: "/nonexistent"}
	if got, err := inline.OutputTemplate(); err != nil || got != "{{ len .Tokens }}" {
		t.Errorf("OutputTemplate() = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "tokens.tmpl")
	if err := os.WriteFile(path, []byte("{{ range .Tokens }}{{ .Name }}{{ end }}"), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	fromFile := OutputConfig{TemplatePath: path}
	if got, err := fromFile.OutputTemplate(); err != nil || !strings.HasPrefix(got, "{{ range") {
		t.Errorf("OutputTemplate() = %q, %v", got, err)
	}

	if _, err := (&OutputConfig{}).OutputTemplate(); err == nil {
		t.Error("Expected error without template")
	}
}

func TestOutputFormat_String(t *testing.T) {
	tests := []struct {
		fmt      OutputFormat
		expected string
	}{
		{OutputFormatText, "text"},
		{OutputFormatJson, "json"},
		{OutputFormatYaml, "yaml"},
		{OutputFormatTemplate, "template"},
		{OutputFormat(99), "OutputFormat(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.fmt.String()
			if got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, name := range SortOrderNames() {
		v, err := ParseSortOrder(name)
		if err != nil {
			t.Errorf("ParseSortOrder(%q) error = %v", name, err)
		}
		if v.String() != name {
			t.Errorf("ParseSortOrder(%q) = %s", name, v)
		}
	}
	if _, err := ParseSortOrder("random"); !errors.Is(err, ErrInvalidSortOrder) {
		t.Errorf("ParseSortOrder(random) error = %v", err)
	}
}

func TestOutputFormat_Ext(t *testing.T) {
	if OutputFormatJson.Ext() != ".json" || OutputFormatTemplate.Ext() != "" {
		t.Error("unexpected extensions")
	}
	defer func() {
		if recover() == nil {
			t.Error("Ext() must panic on unknown format")
		}
	}()
	_ = OutputFormat(42).Ext()
}
