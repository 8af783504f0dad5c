package config

import "flag"

// Flags are the command-line overrides shared by every subcommand.
type Flags struct {
	fs        *flag.FlagSet
	config    *string
	debug     *bool
	logLevel  *string
	logFile   *string
	ydeg      *int
	workers   *int
	tolerance *float64
	update    *bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:        fs,
		config:    fs.String("config", "", "Path to config file"),
		debug:     fs.Bool("debug", false, "Enable debug logging"),
		logLevel:  fs.String("log-level", "", "Log level (debug, info, warn, error)"),
		logFile:   fs.String("log-file", "", "Also log to this rotating file"),
		ydeg:      fs.Int("ydeg", 0, "Surface map degree"),
		workers:   fs.Int("workers", 0, "Batch goroutines (0 = GOMAXPROCS)"),
		tolerance: fs.Float64("tol", 0, "Replay tolerance override"),
		update:    fs.Bool("update", false, "Rewrite replay expectations"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply copies flags that were set explicitly on the command line, so a
// flag left at its zero default never masks a value from the file.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-level":
			cfg.Logging.Level = *f.logLevel
		case "log-file":
			cfg.Logging.LogFile = *f.logFile
		case "ydeg":
			cfg.Solver.YDeg = *f.ydeg
		case "workers":
			cfg.Solver.Workers = *f.workers
		case "tol":
			cfg.Replay.Tolerance = *f.tolerance
		case "update":
			cfg.Replay.Update = *f.update
		}
	})
}
