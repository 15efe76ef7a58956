// file: internal/config/config.go
// version: 1.3.0
// guid: 9d2f4b7e-1a6c-4f3d-b8e5-2c7a9f0d4e16

package config

import (
	"github.com/spf13/viper"
)

// FuzzySearchConfig controls the multi-strategy search orchestration.
type FuzzySearchConfig struct {
	Enabled        bool
	MinQueryLength int // queries shorter than this fall back to plain matching
	MaxWindow      int // ceiling on the fuzzy pagination candidate window
}

// Config holds application configuration
type Config struct {
	Host         string
	Port         int
	DatabasePath string

	FuzzySearch FuzzySearchConfig

	RateLimitEnabled       bool
	RateLimitPerMinute     int
	RateLimitBurst         int
	BasicAuthEnabled       bool
	BasicAuthUsername      string
	BasicAuthPassword      string // plaintext or bcrypt hash ($2a$/$2b$ prefix)
	CORSAllowedOrigin      string
	ShutdownTimeoutSeconds int
}

var AppConfig Config

// InitConfig initializes the application configuration from viper
func InitConfig() {
	// Set defaults
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "stockroom.db")
	viper.SetDefault("fuzzy_search.enabled", true)
	viper.SetDefault("fuzzy_search.min_query_length", 2)
	viper.SetDefault("fuzzy_search.max_window", 500)
	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.requests_per_minute", 300)
	viper.SetDefault("rate_limit.burst", 30)
	viper.SetDefault("basic_auth.enabled", false)
	viper.SetDefault("cors.allowed_origin", "*")
	viper.SetDefault("shutdown_timeout_seconds", 10)

	AppConfig = Config{
		Host:         viper.GetString("host"),
		Port:         viper.GetInt("port"),
		DatabasePath: viper.GetString("database_path"),
		FuzzySearch: FuzzySearchConfig{
			Enabled:        viper.GetBool("fuzzy_search.enabled"),
			MinQueryLength: viper.GetInt("fuzzy_search.min_query_length"),
			MaxWindow:      viper.GetInt("fuzzy_search.max_window"),
		},
		RateLimitEnabled:       viper.GetBool("rate_limit.enabled"),
		RateLimitPerMinute:     viper.GetInt("rate_limit.requests_per_minute"),
		RateLimitBurst:         viper.GetInt("rate_limit.burst"),
		BasicAuthEnabled:       viper.GetBool("basic_auth.enabled"),
		BasicAuthUsername:      viper.GetString("basic_auth.username"),
		BasicAuthPassword:      viper.GetString("basic_auth.password"),
		CORSAllowedOrigin:      viper.GetString("cors.allowed_origin"),
		ShutdownTimeoutSeconds: viper.GetInt("shutdown_timeout_seconds"),
	}

	// Guard against values that would break pagination
	if AppConfig.FuzzySearch.MinQueryLength < 1 {
		AppConfig.FuzzySearch.MinQueryLength = 2
	}
	if AppConfig.FuzzySearch.MaxWindow < 100 {
		AppConfig.FuzzySearch.MaxWindow = 100
	}
}
