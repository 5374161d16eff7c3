package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wxxedu/conv-cmt/internal/commit"
	"github.com/wxxedu/conv-cmt/internal/i18n"
)

// ErrExists is returned by WriteFile when the target exists and force is
// not set.
var ErrExists = errors.New("config file already exists")

// Config holds the settings for an interactive commit session.
type Config struct {
	MaxMessageLen int                 `yaml:"max_message_len" toml:"max_message_len" json:"max_message_len"`
	CaseStrategy  commit.CaseStrategy `yaml:"case_strategy"   toml:"case_strategy"   json:"case_strategy"`
	AutoCase      bool                `yaml:"auto_case"       toml:"auto_case"       json:"auto_case"`
	Editor        string              `yaml:"editor,omitempty" toml:"editor,omitempty" json:"editor,omitempty"`
	Language      string              `yaml:"language"        toml:"language"        json:"language"`
	Types         commit.Catalog      `yaml:"types,omitempty" toml:"types,omitempty" json:"types,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-" json:"path,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxMessageLen: commit.DefaultMaxMessageLen,
		CaseStrategy:  commit.Lowercase,
		Language:      i18n.DefaultLanguage,
	}
}

// Catalog returns the configured commit types, or the default catalog when
// none are configured.
func (c *Config) Catalog() commit.Catalog {
	if len(c.Types) == 0 {
		return commit.DefaultCatalog()
	}
	return c.Types
}

// Policy returns the validation rules for commit messages.
func (c *Config) Policy() commit.Policy {
	return commit.Policy{
		Catalog:  c.Catalog(),
		Strategy: c.CaseStrategy,
		MaxLen:   c.MaxMessageLen,
		AutoCase: c.AutoCase,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.MaxMessageLen <= 0 {
		return fmt.Errorf("max_message_len must be positive, got %d", c.MaxMessageLen)
	}
	if _, err := c.CaseStrategy.MarshalText(); err != nil {
		return fmt.Errorf("case_strategy: %w", err)
	}
	if len(c.Types) > 0 {
		if err := c.Types.Validate(); err != nil {
			return fmt.Errorf("types: %w", err)
		}
	}
	if !i18n.IsSupported(c.Language) {
		return fmt.Errorf("unsupported language %q (available: %s)", c.Language, strings.Join(i18n.Languages(), ", "))
	}
	return nil
}

// Load returns the effective configuration. An explicit path must exist.
// Otherwise the first file found among LocalPaths(repoRoot) and GlobalPaths
// is read; with no file the defaults are returned.
func Load(explicit, repoRoot string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	for _, path := range append(LocalPaths(repoRoot), GlobalPaths()...) {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return Default(), nil
}

// LoadFile reads one config file. Keys missing from the file keep their
// defaults; unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Format is a config file encoding.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes c in format.
func (c *Config) Encode(w io.Writer, format Format) error {
	if format == TOML {
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// WriteFile writes c to path in the format its extension names, creating
// parent directories. An existing file is kept unless force is set.
func WriteFile(path string, c *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, formatOf(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
