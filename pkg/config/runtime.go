package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/modkit/pkg/store"
)

// Runtime is the configuration of one modkit process.
type Runtime struct {
	Build    string `env:"MODKIT_BUILD,required,notEmpty"`
	Backend  string `env:"MODKIT_BACKEND" envDefault:"reflection"`
	DevMode  bool   `env:"MODKIT_DEV_MODE" envDefault:"false"`
	Service  string `env:"MODKIT_SERVICE" envDefault:"modkit"`
	Env      string `env:"MODKIT_ENV" envDefault:"production"`
	LogLevel string `env:"MODKIT_LOG_LEVEL" envDefault:"info"`
	HTTPAddr string `env:"MODKIT_HTTP_ADDR" envDefault:"127.0.0.1:8089"`

	Store store.Config `envPrefix:"MODKIT_STORE_"`
}

// Level parses LogLevel.
func (r Runtime) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Join(ErrInvalidLogLevel, fmt.Errorf("%q", r.LogLevel))
	}
	return l, nil
}
