// Package config loads server configuration from a config file and the
// environment, in the usual precedence order: env beats file beats
// defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort        string `mapstructure:"HTTP_PORT"`
	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDBName     string `mapstructure:"MONGO_DB_NAME"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogPretty       bool   `mapstructure:"LOG_PRETTY"`
	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// BridgeTokenSecret signs the tokens minted by the exchange
	// endpoint. Exchange is disabled when empty.
	BridgeTokenSecret string `mapstructure:"BRIDGE_TOKEN_SECRET"`

	// ClientIdPPublicKey is the PEM-encoded RSA key of the client
	// identity provider whose tokens the exchange endpoint accepts.
	ClientIdPPublicKey string `mapstructure:"CLIENT_IDP_JWT_PUBLIC_KEY"`

	// Identity directory used to resolve display names best-effort.
	DirectoryBaseURL string `mapstructure:"DIRECTORY_BASE_URL"`
	DirectoryAPIKey  string `mapstructure:"DIRECTORY_API_KEY"`

	// RedisAddr selects the Redis-backed profile cache; empty falls
	// back to the in-process cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mediarepo-admin/")
	v.AddConfigPath("$HOME/.mediarepo-admin")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/media_admin_dev")
	v.SetDefault("MONGO_DB_NAME", "media_admin_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "media-admin-api")
	v.SetDefault("SESSION_COOKIE_NAME", "admin_session")

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
