// Package config loads settings from the config file, ADOVIEW_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dloss/adoview/internal/fields"
)

const (
	appName         = "adoview"
	defaultFileName = "config.yaml"
	envPrefix       = "ADOVIEW"
)

// Keys.
const (
	OrganizationKey   = "organization"
	ProjectKey        = "project"
	PRFieldsKey       = "prs.fields"
	PRStatusKey       = "prs.status"
	WorkItemFieldsKey = "workitems.fields"
	WorkItemTypesKey  = "workitems.types"
	CustomFieldsKey   = "fields.custom"
	LogLevelKey       = "log.level"
	LogFileKey        = "log.file"
	ColorKey          = "color"
)

// Sections name the per-kind config blocks.
const (
	PullRequestSection = "prs"
	WorkItemSection    = "workitems"
)

// ConfigurationError is a bad flag, flag combination, config value or
// environment value.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CustomField registers or overrides a field descriptor from config.
type CustomField struct {
	ID        string  `mapstructure:"id"`
	Label     string  `mapstructure:"label"`
	Weight    float64 `mapstructure:"weight"`
	Color     string  `mapstructure:"color"`
	Kind      string  `mapstructure:"kind"`
	Delimiter string  `mapstructure:"delimiter"`
	Path      string  `mapstructure:"path"`
	Chunk     bool    `mapstructure:"chunk"`
	Records   string  `mapstructure:"records"` // prs, workitems, or empty for both
}

// Descriptor converts the config entry into a field descriptor.
func (c CustomField) Descriptor() fields.Descriptor {
	d := fields.Descriptor{
		ID:        strings.TrimSpace(c.ID),
		Label:     c.Label,
		Weight:    c.Weight,
		Color:     c.Color,
		Kind:      fields.ParseKind(c.Kind),
		Delimiter: c.Delimiter,
		Path:      c.Path,
	}
	if c.Chunk {
		d.Wrap = fields.WrapChunk
	}
	return d
}

// Config is the merged view of file, environment and flags.
type Config struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns $XDG_CONFIG_HOME/adoview/config.yaml, falling back to
// ~/.config/adoview/config.yaml.
func DefaultPath() (string, error) {
	dir, set := os.LookupEnv("XDG_CONFIG_HOME")
	if !set || dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, defaultFileName), nil
}

// Load reads path. A missing file is fine unless required is set, which is
// the case when the operator named the file explicitly.
func Load(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault(LogLevelKey, "error")
	v.SetDefault(ColorKey, true)
	v.SetDefault(PRStatusKey, "active")

	c := &Config{v: v, path: path}
	if path == "" {
		return c, nil
	}

	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return c, nil
		}
		return nil, &ConfigurationError{Err: fmt.Errorf("config file %s: %w", path, err)}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("reading config file %s: %w", path, err)}
	}
	return c, nil
}

// Path is the config file the values were loaded from.
func (c *Config) Path() string {
	return c.path
}

// BindFlag makes a changed flag take precedence over key.
func (c *Config) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("no flag to bind to %s", key)
	}
	return c.v.BindPFlag(key, f)
}

func (c *Config) GetString(key string) string {
	return strings.TrimSpace(c.v.GetString(key))
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetList reads a list that may be written as a YAML sequence or as a
// comma-separated string (as it must be in the environment).
func (c *Config) GetList(key string) []string {
	switch raw := c.v.Get(key).(type) {
	case nil:
		return nil
	case string:
		return fields.ParseList(raw)
	case []string:
		return fields.ParseList(strings.Join(raw, ","))
	case []any:
		parts := make([]string, 0, len(raw))
		for _, item := range raw {
			parts = append(parts, fmt.Sprint(item))
		}
		return fields.ParseList(strings.Join(parts, ","))
	default:
		return fields.ParseList(fmt.Sprint(raw))
	}
}

// CustomFields returns the fields.custom entries.
func (c *Config) CustomFields() ([]CustomField, error) {
	var custom []CustomField
	if err := c.v.UnmarshalKey(CustomFieldsKey, &custom); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("%s: %w", CustomFieldsKey, err)}
	}
	return custom, nil
}

// ApplyFields registers the custom fields meant for section and replaces
// the registry's default display fields with <section>.fields, if set.
func (c *Config) ApplyFields(reg *fields.Registry, section string) error {
	custom, err := c.CustomFields()
	if err != nil {
		return err
	}
	for i, cf := range custom {
		if strings.TrimSpace(cf.ID) == "" {
			return &ConfigurationError{Err: fmt.Errorf("%s[%d]: id is required", CustomFieldsKey, i)}
		}
		if cf.Records != "" && cf.Records != section {
			continue
		}
		reg.Register(cf.Descriptor())
	}
	reg.SetDefaults(c.GetList(section + ".fields"))
	return nil
}
