package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Verbose: false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
		Info: InfoConfig{
			TimeFormat: "2006-01-02 15:04:05",
			Include: IncludeConfig{
				Period: 0,
			},
			Exclude: ExcludeConfig{
				Files:    []string{},
				Patterns: []string{},
				Globs:    []string{},
				Size:     SizeConfig{},
			},
		},
	}
}
