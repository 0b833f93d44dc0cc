// Package config loads the immutable run configuration: defaults, an
// optional config file, SWAPTIONS_* environment variables (a .env file in
// the working directory is read into the environment first) and finally
// the command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile is read into the process environment by Load when present.
// Variables already set take precedence over the file.
var envFile = ".env"

// Defaults of the reference run.
const (
	DefaultTrials    = 102400
	DefaultBlockSize = 16
	DefaultSeed      = 100
	DefaultSampler   = "ziggurat"
)

// Config is the top-level configuration. It is not modified after Load
// and Apply, so it can be shared freely between goroutines.
type Config struct {
	Swaptions int          `mapstructure:"swaptions" validate:"min=1"`
	Workers   int          `mapstructure:"workers"`
	Engine    Engine       `mapstructure:"engine"`
	Log       LogConfig    `mapstructure:"log"`
	Server    ServerConfig `mapstructure:"server"`
}

// Engine parametrizes the Monte Carlo pricer.
type Engine struct {
	Trials    int    `mapstructure:"trials"     validate:"min=1"`
	BlockSize int    `mapstructure:"block_size" validate:"min=1,max=4096"`
	Seed      uint64 `mapstructure:"seed"`
	Sampler   string `mapstructure:"sampler"    validate:"oneof=ziggurat inverse"`
}

// LogConfig defines log level, format and optional rotating file output.
type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"min=0"` // MB
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"min=0"` // days
	Compress   bool   `mapstructure:"compress"`
}

// ServerConfig holds the HTTP pricing service limits.
type ServerConfig struct {
	Addr         string  `mapstructure:"addr"`
	RateLimit    float64 `mapstructure:"rate_limit"    validate:"gt=0"` // requests per second per client
	Burst        int     `mapstructure:"burst"         validate:"min=1"`
	MaxSwaptions int     `mapstructure:"max_swaptions" validate:"min=1"`
	MaxTrials    int     `mapstructure:"max_trials"    validate:"min=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("swaptions", 1)
	v.SetDefault("workers", 1)

	v.SetDefault("engine.trials", DefaultTrials)
	v.SetDefault("engine.block_size", DefaultBlockSize)
	v.SetDefault("engine.seed", DefaultSeed)
	v.SetDefault("engine.sampler", DefaultSampler)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.burst", 4)
	v.SetDefault("server.max_swaptions", 256)
	v.SetDefault("server.max_trials", 1<<20)
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}
	v.SetEnvPrefix("SWAPTIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Apply overrides the loaded values with the ones given on the command
// line. There must be at least as many swaptions as workers.
func (c *Config) Apply(a Args) {
	if a.Swaptions != nil {
		c.Swaptions = *a.Swaptions
	}
	if a.Trials != nil {
		c.Engine.Trials = *a.Trials
	}
	if a.Workers != nil {
		c.Workers = *a.Workers
	}
	if a.Serve != "" {
		c.Server.Addr = a.Serve
	}
	if c.Swaptions < c.Workers {
		c.Swaptions = c.Workers
	}
}

// Validate checks the worker count and every struct constraint.
func (c *Config) Validate() error {
	if err := CheckWorkers(c.Workers); err != nil {
		return err
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
