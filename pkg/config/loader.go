package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Parse populates v from the environment based on its field tags.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadEnv loads the given .env files into the process environment. Without
// arguments it loads ./.env when present and ignores its absence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		// The default file is optional.
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load loads the .env files and parses Runtime.
func Load(files ...string) (Runtime, error) {
	var cfg Runtime
	if err := LoadEnv(files...); err != nil {
		return cfg, err
	}
	if err := Parse(&cfg); err != nil {
		return cfg, err
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad(files ...string) Runtime {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return cfg
}
