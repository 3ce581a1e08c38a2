// Package config resolves dockit settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// OutputDirEnvVar overrides the default output directory.
	OutputDirEnvVar = "DOCKIT_OUTPUT_DIR"

	// MaxFileSizeEnvVar overrides the source file size limit, in bytes.
	MaxFileSizeEnvVar = "DOCKIT_MAX_FILE_SIZE"
)

// Config carries the environment-derived settings. Flags take precedence
// over these values at the CLI layer.
type Config struct {
	OutputDir   string
	MaxFileSize int64
}

// FromEnv reads configuration from the environment. Unset variables leave
// zero values for the caller to default.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OutputDir: os.Getenv(OutputDirEnvVar),
	}

	if raw := os.Getenv(MaxFileSizeEnvVar); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid %s value %q: must be a positive byte count", MaxFileSizeEnvVar, raw)
		}
		cfg.MaxFileSize = size
	}

	return cfg, nil
}
