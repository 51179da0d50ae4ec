package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	EngineConfig struct {
		MaxDepth int  `yaml:"max_depth" validate:"min=0,max=1024"`
		Strict   bool `yaml:"strict"`
	}

	ThemeConfig struct {
		Primary   string   `yaml:"primary" sanitize:"assure_file_access"`
		Override  string   `yaml:"override" sanitize:"assure_file_access"`
		Include   []string `yaml:"include" validate:"dive,required"`
		Exclude   []string `yaml:"exclude" validate:"dive,required"`
		CacheSize int      `yaml:"cache_size" validate:"min=1"`
	}

	OutputConfig struct {
		Format       OutputFormat `yaml:"format"`
		Template     string       `yaml:"template"`
		TemplatePath string       `yaml:"template_path" sanitize:"assure_file_access"`
		Sort         SortOrder    `yaml:"sort"`
		Indent       int          `yaml:"indent" validate:"min=0,max=8"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Engine    EngineConfig   `yaml:"engine"`
		Theme     ThemeConfig    `yaml:"theme"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// OutputTemplate returns text of the export template: inline template wins,
// otherwise template file is read.
func (conf *OutputConfig) OutputTemplate() (string, error) {
	if len(conf.Template) > 0 {
		return conf.Template, nil
	}
	if len(conf.TemplatePath) == 0 {
		return "", fmt.Errorf("no output template configured")
	}
	data, err := os.ReadFile(conf.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("unable to read output template: %w", err)
	}
	return string(data), nil
}
