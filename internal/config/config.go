package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the environment-driven runtime configuration.
type Config struct {
	Scorer      string        `env:"SMEKIT_SCORER"       envDefault:"mock"`
	ScorerURL   string        `env:"SMEKIT_SCORER_URL"`
	ScorerDelay time.Duration `env:"SMEKIT_SCORER_DELAY" envDefault:"2s"`
	CheckDelay  time.Duration `env:"SMEKIT_CHECK_DELAY"  envDefault:"1500ms"`
	DBPath      string        `env:"SMEKIT_DB_PATH"`
	LogLevel    string        `env:"SMEKIT_LOG_LEVEL"    envDefault:"warn"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ScorerDelay < 0 || cfg.CheckDelay < 0 {
		return Config{}, fmt.Errorf("parse env: delays must not be negative")
	}
	return cfg, nil
}

// NewLogger builds a console zap logger writing to w. verbose forces debug
// level regardless of SMEKIT_LOG_LEVEL.
func (c Config) NewLogger(verbose bool, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid SMEKIT_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(w))), nil
}
