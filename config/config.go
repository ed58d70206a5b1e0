package config

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read from the environment
type Config struct {
	Player1Name        string `env:"DURAK_PLAYER1_NAME,default=Harry"`
	Player2Name        string `env:"DURAK_PLAYER2_NAME,default=Sally"`
	WinnerAttacksFirst bool   `env:"DURAK_WINNER_ATTACKS_FIRST,default=false"`
	// Seed of the shuffle; 0 seeds from the clock
	Seed       int64  `env:"DURAK_SEED,default=0"`
	MaxRetries int    `env:"DURAK_MAX_RETRIES,default=3"`
	LogLevel   string `env:"DURAK_LOG_LEVEL,default=warn"`
}

// Load reads the config from the environment. Values that do not parse are
// errors.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envdecode can not
func (c Config) Validate() error {
	if c.Player1Name == "" || c.Player2Name == "" {
		return fmt.Errorf("%w: player names must not be empty", ErrInvalidConfig)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: DURAK_MAX_RETRIES must be at least 1, got %d", ErrInvalidConfig, c.MaxRetries)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: DURAK_LOG_LEVEL: %s", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) level() (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// Logger builds a development logger at the configured level
func (c Config) Logger() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Rand returns the source of every shuffle
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
