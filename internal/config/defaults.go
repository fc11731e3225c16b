package config

const (
	DefaultProject      = "Documentation"
	DefaultSourceSuffix = ".rst"
	DefaultOutputDir    = "_build"
)

func applyDefaults(cfg *Config) {
	if cfg.Project == "" {
		cfg.Project = DefaultProject
	}
	if cfg.SourceSuffix == "" {
		cfg.SourceSuffix = DefaultSourceSuffix
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Builder == "" {
		cfg.Builder = BuilderHTML
	}
	// Zero means "not set"; negative values are rejected by validation.
	if cfg.Parallel == 0 {
		cfg.Parallel = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Values == nil {
		cfg.Values = map[string]any{}
	}
}
