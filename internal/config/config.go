package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
)

// DefaultConfigFile is the file name looked up when no --config flag is given.
const DefaultConfigFile = "gitstamp.yaml"

// Config represents the project configuration of a documentation build.
//
// Keys that are not part of the fixed schema are collected in Values and
// resolved by extensions that register options for them.
type Config struct {
	Project      string         `yaml:"project"`
	SourceDir    string         `yaml:"source_dir,omitempty"`
	SourceSuffix string         `yaml:"source_suffix,omitempty"`
	Builder      BuilderName    `yaml:"builder,omitempty"`
	OutputDir    string         `yaml:"output_dir,omitempty"`
	Parallel     int            `yaml:"parallel,omitempty"`
	TemplatesDir string         `yaml:"templates_dir,omitempty"`
	Extensions   []string       `yaml:"extensions,omitempty"`
	Logging      LoggingConfig  `yaml:"logging,omitempty"`
	Values       map[string]any `yaml:",inline"`

	path string
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load loads configuration from the specified file. Environment files next
// to it are read first so ${VAR} references in the YAML can use them.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	cfg.path = configPath
	return cfg, nil
}

// Parse decodes YAML configuration data, expanding ${VAR} references,
// then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			UserAction().
			Build()
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied and no backing file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func (c *Config) finalize() error {
	applyDefaults(c)
	return validate(c)
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the configuration file.
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// ConfDir returns the directory page sources are resolved against. It is
// the configuration file's directory unless source_dir overrides it.
func (c *Config) ConfDir() string {
	if c.SourceDir == "" {
		return c.Dir()
	}
	return c.resolve(c.SourceDir)
}

// OutputPath returns the build output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.OutputDir)
}

// TemplatesPath returns the template override directory, or "" when unset.
func (c *Config) TemplatesPath() string {
	if c.TemplatesDir == "" {
		return ""
	}
	return c.resolve(c.TemplatesDir)
}

// HasExtension reports whether the named extension is enabled.
func (c *Config) HasExtension(name string) bool {
	for _, ext := range c.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}
