package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultRedisURL = "redis://localhost:6379/0"
	defaultQueue    = "default"
	defaultLogLevel = "info"
)

// Config is read from the environment first, then overridden by the YAML
// file given with --config.
type Config struct {
	// DSN of the Postgres database holding samples and test runs.
	DSN      string `yaml:"dsn" validate:"required"`
	RedisURL string `yaml:"redisURL" validate:"required,url"`
	// Queue is the Sidekiq queue name, without the "queue:" prefix.
	Queue string `yaml:"queue" validate:"required"`
	// Fuzziness is the classification tolerance in percent of the value range.
	Fuzziness float64 `yaml:"fuzziness" validate:"gte=0,lte=100"`
	LogLevel  string  `yaml:"logLevel" validate:"oneof=trace debug info warn warning error"`
}

func configFromEnv() (*Config, error) {
	cfg := &Config{
		RedisURL: os.Getenv("REDIS_URL"),
		Queue:    os.Getenv("WORKER_QUEUE"),
		LogLevel: os.Getenv("LOG_LEVEL"),
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.Queue == "" {
		cfg.Queue = defaultQueue
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if v := os.Getenv("BOXPLOT_FUZZINESS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BOXPLOT_FUZZINESS %q: %w", v, err)
		}
		cfg.Fuzziness = f
	}
	// A missing DSN is only an error if the config file does not supply one
	// either, validation reports it.
	if dsn, err := buildDSNFromEnv(); err == nil {
		cfg.DSN = dsn
	}
	return cfg, nil
}

// loadConfig builds the configuration from the environment and the optional
// YAML file at path, then validates it.
func loadConfig(path string) (*Config, error) {
	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
