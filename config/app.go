package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName          string `mapstructure:"APP_NAME"`
	Env              string `mapstructure:"APP_ENV"`
	Debug            bool   `mapstructure:"DEBUG"`
	StorageRoot      string `mapstructure:"STORAGE_ROOT"`
	FieldDelimiter   string `mapstructure:"FIELD_DELIMITER"`
	AuditDriver      string `mapstructure:"AUDIT_DRIVER"`
	AuditDSN         string `mapstructure:"AUDIT_DSN"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPass        string `mapstructure:"REDIS_PASS"`
	NotifyFeedKey    string `mapstructure:"NOTIFY_FEED_KEY"`
	LowStockSchedule string `mapstructure:"LOW_STOCK_SCHEDULE"`
}

var defaults = map[string]interface{}{
	"APP_NAME":           "procure",
	"APP_ENV":            "development",
	"DEBUG":              false,
	"STORAGE_ROOT":       "./data",
	"FIELD_DELIMITER":    ",",
	"AUDIT_DRIVER":       "sqlite",
	"NOTIFY_FEED_KEY":    "procure:notifications",
	"LOW_STOCK_SCHEDULE": "@every 1h",
}

// LoadAppConfig initializes the global AppConfig variable from the environment.
func LoadAppConfig() {
	once.Do(func() {
		cfg, err := ConfigFromEnv(os.Environ())
		if err != nil {
			panic(fmt.Sprintf("config: %v", err))
		}
		AppConfig = cfg
	})
}

// ConfigFromEnv builds a Config from KEY=VALUE pairs, applying defaults for unset keys.
func ConfigFromEnv(environ []string) (*Config, error) {
	raw := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		raw[k] = v
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		if _, known := defaults[k]; known || k == "AUDIT_DSN" || k == "REDIS_ADDR" || k == "REDIS_PASS" {
			raw[k] = v
		}
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(cfg.FieldDelimiter) != 1 {
		return nil, fmt.Errorf("FIELD_DELIMITER must be a single character, got %q", cfg.FieldDelimiter)
	}
	switch cfg.AuditDriver {
	case "sqlite", "mysql", "off":
	default:
		return nil, fmt.Errorf("AUDIT_DRIVER must be sqlite, mysql or off, got %q", cfg.AuditDriver)
	}
	return cfg, nil
}

// Delimiter returns the configured field separator.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.FieldDelimiter)
	return r
}
