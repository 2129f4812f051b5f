package config

import (
	"git.home.luguber.info/inful/exrunner/internal/examples"
	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if cfg.Examples.Dir == "" {
		return derrors.ValidationFailed("examples.dir", "must not be empty")
	}
	if cfg.Examples.Suffix == "" {
		return derrors.ValidationFailed("examples.suffix", "must not be empty")
	}
	if !examples.Order(cfg.Examples.Order).Valid() {
		return derrors.ValidationFailed("examples.order", "must be one of: name, listing").
			WithContext("value", cfg.Examples.Order)
	}
	if cfg.Tool.Command == "" {
		return derrors.ValidationFailed("tool.command", "must not be empty")
	}
	if cfg.Watch.Debounce < 0 {
		return derrors.ValidationFailed("watch.debounce", "must not be negative")
	}
	if cfg.Schedule.Interval < 0 {
		return derrors.ValidationFailed("schedule.interval", "must not be negative")
	}
	return nil
}
