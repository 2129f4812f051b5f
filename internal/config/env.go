package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvExamplesDir = "EXRUNNER_EXAMPLES_DIR"
	EnvSuffix      = "EXRUNNER_SUFFIX"
	EnvTool        = "EXRUNNER_TOOL"
)

// envFiles are loaded in order; earlier files win because existing
// variables are never overwritten.
var envFiles = []string{".env.local", ".env"}

// loadEnvFile loads environment variables from .env.local/.env when present.
// Existing process environment variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	return nil
}

// applyEnvOverrides applies EXRUNNER_* variables on top of the file values.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvExamplesDir)); v != "" {
		cfg.Examples.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSuffix)); v != "" {
		cfg.Examples.Suffix = v
	}
	if fields := strings.Fields(os.Getenv(EnvTool)); len(fields) > 0 {
		cfg.Tool.Command = fields[0]
		cfg.Tool.Args = fields[1:]
	}
}
