// Package config loads server settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Keys. Each one is also read from the upper-cased environment variable.
const (
	KeyDatabaseURL  = "database_url"
	KeyAddr         = "http_addr"
	KeyAPIPrefix    = "api_prefix"
	KeyLogLevel     = "log_level"
	KeyListMaxLimit = "list_max_limit"
	KeyKafkaBrokers = "kafka_brokers"
	KeyKafkaTopic   = "kafka_topic"
)

// DefaultEnvFile is read when present and no other file is named.
const DefaultEnvFile = ".env"

// Config holds everything the server needs at startup.
type Config struct {
	DatabaseURL  string
	Addr         string
	APIPrefix    string
	LogLevel     zapcore.Level
	ListMaxLimit int
	KafkaBrokers []string
	KafkaTopic   string
}

// New returns a viper instance with defaults set and environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDatabaseURL, "sqlite:///./sql_app.db")
	v.SetDefault(KeyAddr, ":8000")
	v.SetDefault(KeyAPIPrefix, "/api")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyListMaxLimit, 1000)
	v.SetDefault(KeyKafkaBrokers, "")
	v.SetDefault(KeyKafkaTopic, "dostava-events")
	v.AutomaticEnv()
	return v
}

// ReadEnvFile merges a dotenv file into v. A missing file is only an error
// when it was asked for explicitly.
func ReadEnvFile(v *viper.Viper, path string, explicit bool) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("reading env file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}
	return nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DatabaseURL:  strings.TrimSpace(v.GetString(KeyDatabaseURL)),
		Addr:         v.GetString(KeyAddr),
		APIPrefix:    normalizePrefix(v.GetString(KeyAPIPrefix)),
		ListMaxLimit: v.GetInt(KeyListMaxLimit),
		KafkaBrokers: splitList(v.GetString(KeyKafkaBrokers)),
		KafkaTopic:   v.GetString(KeyKafkaTopic),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database_url must not be empty")
	}
	if cfg.ListMaxLimit <= 0 {
		return Config{}, fmt.Errorf("list_max_limit must be positive, got %d", cfg.ListMaxLimit)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return Config{}, errors.New("kafka_topic must be set when kafka_brokers is")
	}

	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("log_level: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api". "/" and "" mean
// no prefix.
func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
