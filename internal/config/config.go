// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AnonKey        string `mapstructure:"ANON_KEY"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// AllowGuestPosts keeps the guest-write path explicit: when true, a
	// request with no token (or the public anon key) may create a post
	// with a self-asserted author.
	AllowGuestPosts bool `mapstructure:"ALLOW_GUEST_POSTS"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			return nil, err
		}
	}

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("ANON_KEY", "public-anon-key")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("ALLOW_GUEST_POSTS", true)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
