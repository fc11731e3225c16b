package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
)

// validate checks the configuration after defaults were applied and
// replaces enum fields with their normalized values.
func validate(cfg *Config) error {
	builder, err := ParseBuilderName(string(cfg.Builder))
	if err != nil {
		return invalid("builder", err)
	}
	cfg.Builder = builder

	level, err := logLevelNormalizer.Parse(string(cfg.Logging.Level))
	if err != nil {
		return invalid("logging.level", err)
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.Parse(string(cfg.Logging.Format))
	if err != nil {
		return invalid("logging.format", err)
	}
	cfg.Logging.Format = format

	if cfg.Parallel < 0 {
		return invalid("parallel", fmt.Errorf("must not be negative, got %d", cfg.Parallel))
	}

	if !strings.HasPrefix(cfg.SourceSuffix, ".") || len(cfg.SourceSuffix) < 2 {
		return invalid("source_suffix", fmt.Errorf("must start with a dot, got %q", cfg.SourceSuffix))
	}

	seen := make(map[string]bool, len(cfg.Extensions))
	for i, ext := range cfg.Extensions {
		name := strings.TrimSpace(ext)
		if name == "" {
			return invalid("extensions", fmt.Errorf("entry %d is empty", i))
		}
		if seen[name] {
			return invalid("extensions", fmt.Errorf("duplicate extension: %s", name))
		}
		seen[name] = true
		cfg.Extensions[i] = name
	}

	return nil
}

func invalid(field string, err error) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
		WithContext("field", field).
		Fatal().
		UserAction().
		Build()
}
