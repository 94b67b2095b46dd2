package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	InstructionsAsk    = "ask"
	InstructionsAlways = "always"
	InstructionsNever  = "never"
)

var (
	ErrUnknownLogLevel     = errors.New("unknown log level")
	ErrUnknownInstructions = errors.New("unknown instructions mode")
)

type Config struct {
	LogLevel     string `yaml:"log-level" env:"HEXAPAWN_LOG_LEVEL" env-default:"warn"`
	Instructions string `yaml:"instructions" env:"HEXAPAWN_INSTRUCTIONS" env-default:"ask"`
	Seed         uint64 `yaml:"seed" env:"HEXAPAWN_SEED" env-default:"0"`
	Color        bool   `yaml:"color" env:"HEXAPAWN_COLOR" env-default:"false"`
	Redis        Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"HEXAPAWN_REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"HEXAPAWN_REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"HEXAPAWN_REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"HEXAPAWN_REDIS_GAME_TTL" env-default:"0s"`
}

// Load - reads the config file at path; without one, only the environment and defaults apply.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	switch that.Instructions {
	case InstructionsAsk, InstructionsAlways, InstructionsNever:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInstructions, that.Instructions)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
