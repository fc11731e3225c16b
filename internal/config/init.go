package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
)

// Init creates a new configuration file with example content. values seeds
// extension options, typically the defaults registered by the extensions.
func Init(configPath string, force bool, extensions []string, values map[string]any) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Example(extensions, values)

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example(extensions []string, values map[string]any) *Config {
	cfg := &Config{
		Project:      "Example Docs",
		SourceSuffix: DefaultSourceSuffix,
		Builder:      BuilderHTML,
		OutputDir:    DefaultOutputDir,
		Parallel:     1,
		Extensions:   append([]string(nil), extensions...),
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Values: make(map[string]any, len(values)),
	}
	for k, v := range values {
		cfg.Values[k] = v
	}
	return cfg
}
