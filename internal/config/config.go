package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	APIBase        string
	CacheTTL       time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	RequestTimeout time.Duration
	FallbackPrice  float64
	LogLevel       string

	RPCURL   string
	Contract string
	Account  string
	Journal  string
	PgDSN    string
	Tokens   []string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SWAPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-base", "https://sepolia-api.ekubo.org")
	v.SetDefault("cache-ttl", 5*time.Minute)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("request-timeout", 15*time.Second)
	v.SetDefault("fallback-price", 1800.0)
	v.SetDefault("log-level", "info")
	v.SetDefault("journal", "./data/swaps.jsonl")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		APIBase:        v.GetString("api-base"),
		CacheTTL:       v.GetDuration("cache-ttl"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		RequestTimeout: v.GetDuration("request-timeout"),
		FallbackPrice:  v.GetFloat64("fallback-price"),
		LogLevel:       v.GetString("log-level"),
		RPCURL:         v.GetString("rpc"),
		Contract:       v.GetString("contract"),
		Account:        v.GetString("account"),
		Journal:        v.GetString("journal"),
		PgDSN:          v.GetString("pg-dsn"),
		Tokens:         getStringSlice(v, "token"),
	}

	if cfg.FallbackPrice < 0 {
		return Config{}, fmt.Errorf("fallback-price must not be negative: %v", cfg.FallbackPrice)
	}

	return cfg, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	return cleanStrings(strings.Split(input, ","))
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
