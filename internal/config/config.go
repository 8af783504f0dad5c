// Package config handles reflux command configuration.
package config

// Config holds all command settings.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Replay  ReplayConfig  `yaml:"replay"`
	Logging LoggingConfig `yaml:"logging"`
}

// SolverConfig holds solver settings.
type SolverConfig struct {
	YDeg    int `yaml:"ydeg"`    // surface-map degree for basis/illum
	Workers int `yaml:"workers"` // batch goroutines; <= 0 means GOMAXPROCS
}

// ReplayConfig holds fixture replay settings.
type ReplayConfig struct {
	Tolerance float64 `yaml:"tolerance"` // overrides a table's own tolerance when > 0
	Update    bool    `yaml:"update"`    // rewrite expectations instead of checking
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			YDeg:    2,
			Workers: 0,
		},
		Replay: ReplayConfig{
			Tolerance: 0,
			Update:    false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
