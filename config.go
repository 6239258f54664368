package kscope

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFormat represents the configuration file format.
type ConfigFormat int

const (
	// ConfigAuto detects the format from the file extension (TOML by default).
	ConfigAuto ConfigFormat = iota
	// ConfigTOML represents TOML format.
	ConfigTOML
	// ConfigYAML represents YAML format.
	ConfigYAML
)

// String returns the string representation of the format.
func (f ConfigFormat) String() string {
	switch f {
	case ConfigAuto:
		return "auto"
	case ConfigTOML:
		return "toml"
	case ConfigYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config is the file form of a precedence table plus parse and format options.
//
//	replace_defaults = false
//
//	[operators]
//	"/" = 300
//	">" = 100
//
//	[parse]
//	max_depth = 64
//	strict_numbers = true
type Config struct {
	// ReplaceDefaults starts from an empty table instead of DefaultTable.
	ReplaceDefaults bool `toml:"replace_defaults" yaml:"replace_defaults"`
	// Operators maps single-character operators to precedences.
	Operators map[string]int `toml:"operators" yaml:"operators"`
	// Parse holds parser options.
	Parse ParseConfig `toml:"parse" yaml:"parse"`
	// Format holds writer options.
	Format FormatConfig `toml:"format" yaml:"format"`
}

// ParseConfig is the file form of ParseOptions.
type ParseConfig struct {
	MaxDepth             int  `toml:"max_depth" yaml:"max_depth"`
	StrictNumbers        bool `toml:"strict_numbers" yaml:"strict_numbers"`
	AllowDuplicateParams bool `toml:"allow_duplicate_params" yaml:"allow_duplicate_params"`
}

// FormatConfig is the file form of FormatOptions.
type FormatConfig struct {
	Indent        string `toml:"indent" yaml:"indent"`
	BodyOnNewLine bool   `toml:"body_on_new_line" yaml:"body_on_new_line"`
}

// LoadConfig reads a configuration file, detecting its format by extension.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return DecodeConfig(f, detectFormat(path))
}

// DecodeConfig reads a configuration from r. ConfigAuto is treated as TOML.
func DecodeConfig(r io.Reader, format ConfigFormat) (*Config, error) {
	var cfg Config
	switch format {
	case ConfigAuto, ConfigTOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: toml: %w", ErrConfig, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrConfig, keys[0].String())
		}

	case ConfigYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: yaml: %w", ErrConfig, err)
		}

	default:
		return nil, fmt.Errorf("%w: unsupported format %s", ErrConfig, format)
	}

	return &cfg, nil
}

// LoadTable reads a configuration file and returns its precedence table.
func LoadTable(path string) (*Table, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	return cfg.Table()
}

// DecodeTable reads a configuration from r and returns its precedence table.
func DecodeTable(r io.Reader, format ConfigFormat) (*Table, error) {
	cfg, err := DecodeConfig(r, format)
	if err != nil {
		return nil, err
	}

	return cfg.Table()
}

// Table builds the precedence table described by the configuration.
// Operator keys must be exactly one character and the resulting table must
// validate without errors.
func (c *Config) Table() (*Table, error) {
	t := DefaultTable()
	if c.ReplaceDefaults {
		t = NewTable()
	}

	for key, prec := range c.Operators {
		op, size := utf8.DecodeRuneInString(key)
		if op == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("%w: operator %q must be a single character", ErrConfig, key)
		}
		t.Set(op, prec)
	}

	for _, issue := range t.Validate() {
		if issue.Level == IssueError {
			return nil, fmt.Errorf("%w: operator %s: %s", ErrConfig, issue.Path, issue.Message)
		}
	}

	return t, nil
}

// ParseOptions returns the parser options described by the configuration.
func (c *Config) ParseOptions() *ParseOptions {
	return &ParseOptions{
		MaxDepth:             c.Parse.MaxDepth,
		StrictNumbers:        c.Parse.StrictNumbers,
		AllowDuplicateParams: c.Parse.AllowDuplicateParams,
	}
}

// FormatOptions returns the writer options described by the configuration,
// bound to table.
func (c *Config) FormatOptions(table *Table) *FormatOptions {
	return &FormatOptions{
		Table:         table,
		Indent:        c.Format.Indent,
		BodyOnNewLine: c.Format.BodyOnNewLine,
	}
}

// detectFormat determines the configuration format from file extension.
func detectFormat(path string) ConfigFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ConfigYAML
	default:
		return ConfigTOML
	}
}
