package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the intake API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	SessionSecret    string
	SessionTTL       time.Duration
	LoginMaxFailures int
	LoginWindow      time.Duration
	PresenceWindow   time.Duration
	StatsCacheTTL    time.Duration
	Timezone         string
	Location         *time.Location
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Now returns the current time in the configured municipal timezone.
func (c Config) Now() time.Time {
	return time.Now().In(c.Location)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MUNI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Muni Intake API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "8h")
	v.SetDefault("login.max_failures", 5)
	v.SetDefault("login.window", "5m")
	v.SetDefault("presence.window", "90s")
	v.SetDefault("stats.cache_ttl", "30s")
	v.SetDefault("timezone", "America/Lima")

	sessionTTL, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	loginWindow, err := time.ParseDuration(v.GetString("login.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login window: %w", err)
	}

	presenceWindow, err := time.ParseDuration(v.GetString("presence.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid presence window: %w", err)
	}

	statsTTL, err := time.ParseDuration(v.GetString("stats.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		SessionSecret:    v.GetString("session.secret"),
		SessionTTL:       sessionTTL,
		LoginMaxFailures: v.GetInt("login.max_failures"),
		LoginWindow:      loginWindow,
		PresenceWindow:   presenceWindow,
		StatsCacheTTL:    statsTTL,
		Timezone:         v.GetString("timezone"),
	}

	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("session secret must be provided")
	}

	if cfg.LoginMaxFailures <= 0 {
		cfg.LoginMaxFailures = 5
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = location

	return cfg, nil
}
