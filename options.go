package gimbal

import (
	"fmt"
	"math/rand/v2"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RuntimeOptions are process-wide settings read from the environment.
type RuntimeOptions struct {
	// Debug switches to a human-readable development logger.
	Debug bool `env:"GIMBAL_DEBUG" envDefault:"false"`
	// LogLevel is a zap level name.
	LogLevel string `env:"GIMBAL_LOG_LEVEL" envDefault:"info"`
	// Seed seeds random-driven nodes. Zero picks a random seed.
	Seed uint64 `env:"GIMBAL_SEED" envDefault:"0"`
	// FixedDeltaTime is the frame time, in seconds, used when a host has no
	// clock of its own.
	FixedDeltaTime float64 `env:"GIMBAL_FIXED_DT" envDefault:"0.016666666666666666"`
}

// LoadRuntimeOptions reads RuntimeOptions from the environment.
func LoadRuntimeOptions() (RuntimeOptions, error) {
	var opts RuntimeOptions
	if err := env.Parse(&opts); err != nil {
		return RuntimeOptions{}, fmt.Errorf("parse env: %w", err)
	}
	if opts.FixedDeltaTime <= 0 {
		return RuntimeOptions{}, fmt.Errorf("parse env: GIMBAL_FIXED_DT must be positive, got %v", opts.FixedDeltaTime)
	}
	return opts, nil
}

// NewLogger builds a zap logger for the options.
func (o RuntimeOptions) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	config := zap.NewProductionConfig()
	if o.Debug {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Rand returns a generator seeded from Seed, or randomly when Seed is zero.
func (o RuntimeOptions) Rand() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
