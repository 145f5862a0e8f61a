// Package config loads exmerge settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exmerge-go/pkg/exmerge"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "exmerge.yaml"

// DefaultBody is the template body a new session starts with.
const DefaultBody = `Señor {{NOMBRE}} con C.C. {{CEDULA}} le solicito comedidamente realizar el curso {{CURSO}} a través de la plataforma indicada, con fecha máxima hasta el {{FECHA}}.

Quedo atenta,

Cordialmente`

// Config is the root configuration.
type Config struct {
	Ingest   IngestConfig   `yaml:"ingest"`
	Template TemplateConfig `yaml:"template"`
	Export   ExportConfig   `yaml:"export"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// IngestConfig controls spreadsheet reading.
type IngestConfig struct {
	Format          string `yaml:"format,omitempty"`
	ChunkSize       int    `yaml:"chunk_size,omitempty"`
	Delimiter       string `yaml:"delimiter,omitempty"`
	FormattedValues bool   `yaml:"formatted_values,omitempty"`
}

// TemplateConfig holds the template a session starts with.
type TemplateConfig struct {
	Subject string `yaml:"subject,omitempty"`
	Body    string `yaml:"body,omitempty"`
}

// ExportConfig controls export file names and layout.
type ExportConfig struct {
	TextFile       string `yaml:"text_file,omitempty"`
	CSVFile        string `yaml:"csv_file,omitempty"`
	JSONFile       string `yaml:"json_file,omitempty"`
	SeparatorWidth int    `yaml:"separator_width,omitempty"`
}

// ServerConfig controls the HTTP session API.
type ServerConfig struct {
	Addr         string        `yaml:"addr,omitempty"`
	MaxUploadMB  int64         `yaml:"max_upload_mb,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			ChunkSize: 1000,
		},
		Template: TemplateConfig{
			Body: DefaultBody,
		},
		Export: ExportConfig{
			TextFile:       "correos.txt",
			CSVFile:        "correos.csv",
			JSONFile:       "correos.json",
			SeparatorWidth: 80,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxUploadMB:  20,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads a YAML configuration file. Environment variables in the file
// are expanded and unset fields take their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path when set, DefaultFile when it exists, and the
// built-in defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	cfg := Default()
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Ingest.ChunkSize < 0 {
		return fmt.Errorf("ingest.chunk_size must not be negative")
	}
	if _, ok := exmerge.ParseFormat(c.Ingest.Format); !ok {
		return fmt.Errorf("ingest.format must be auto, xlsx, xls, or csv, got %q", c.Ingest.Format)
	}
	if n := len([]rune(c.Ingest.Delimiter)); n > 1 && c.Ingest.Delimiter != `\t` {
		return fmt.Errorf("ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	if c.Export.SeparatorWidth < 0 {
		return fmt.Errorf("export.separator_width must not be negative")
	}
	if c.Server.MaxUploadMB < 0 {
		return fmt.Errorf("server.max_upload_mb must not be negative")
	}
	return nil
}

// InputFormat returns the configured input format.
func (c IngestConfig) InputFormat() exmerge.Format {
	f, _ := exmerge.ParseFormat(c.Format)
	return f
}

// DelimiterRune returns the configured delimiter, or zero to sniff it.
func (c IngestConfig) DelimiterRune() rune {
	if c.Delimiter == `\t` {
		return '\t'
	}
	for _, r := range c.Delimiter {
		return r
	}
	return 0
}
