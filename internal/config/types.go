package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Redis         RedisConfig
	ProjectID     string
	TimeZone      string
	DigestCron    string
	RateLimit     RateLimitConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether messages can actually be posted.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RedisConfig is optional. An empty Addr selects the in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
}

// RateLimitConfig bounds write requests per client.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
