package config

import "time"

// Defaults reproduce `cargo run --example <name>` over ./examples/*.rs.
const (
	DefaultExamplesDir = "./examples"
	DefaultSuffix      = ".rs"
	DefaultOrder       = "name"
	DefaultCommand     = "cargo"
	DefaultDebounce    = 300 * time.Millisecond
	DefaultInterval    = time.Hour
)

// DefaultArgs is the argument template used with DefaultCommand.
func DefaultArgs() []string { return []string{"run", "--example", "{example}"} }

// ApplyDefaults fills zero values in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Examples.Dir == "" {
		cfg.Examples.Dir = DefaultExamplesDir
	}
	if cfg.Examples.Suffix == "" {
		cfg.Examples.Suffix = DefaultSuffix
	}
	if cfg.Examples.Order == "" {
		cfg.Examples.Order = DefaultOrder
	}
	if cfg.Tool.Command == "" {
		cfg.Tool.Command = DefaultCommand
		if len(cfg.Tool.Args) == 0 {
			cfg.Tool.Args = DefaultArgs()
		}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = DefaultInterval
	}
}

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
