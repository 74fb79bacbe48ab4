package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the attendance server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the secret used to sign the session cookie.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the lifetime of the session cookie in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookie marks the session cookie as https only.
	SecureCookie bool `yaml:"secure_cookie" mapstructure:"secure_cookie"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Auth holds the login configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Cache holds the cache engine configuration used by the login throttle.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Report holds the configuration of the stale open session report.
	Report *ReportConfig `yaml:"report" mapstructure:"report"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// AuthConfig holds the login configuration.
type AuthConfig struct {
	// MaxFailedLogins is the number of failed logins per username after which further attempts are rejected.
	MaxFailedLogins int `yaml:"max_failed_logins" mapstructure:"max_failed_logins"`
	// LockoutWindow is how long failed logins are remembered.
	LockoutWindow time.Duration `yaml:"lockout_window" mapstructure:"lockout_window"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// ReportConfig holds the configuration of the stale open session report.
type ReportConfig struct {
	// Enabled indicates whether the report job is scheduled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Schedule is the cron schedule of the report (e.g., "0 * * * *" for every hour).
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
	// MaxOpenDuration is how long a record may stay open before it is reported.
	MaxOpenDuration time.Duration `yaml:"max_open_duration" mapstructure:"max_open_duration"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// session_key has no default, so AutomaticEnv alone would never see it
	v.MustBindEnv("session_key", "ATTENDANCE_SESSION_KEY")

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.attendance")
		v.AddConfigPath("/etc/attendance")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the ATTENDANCE_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:5000")
	v.SetDefault("session_max_age", 86400) // 24 hours
	v.SetDefault("secure_cookie", false)

	v.SetDefault("database.path", "./data/attendance.db")

	v.SetDefault("auth.max_failed_logins", 5)
	v.SetDefault("auth.lockout_window", 15*time.Minute)

	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("report.enabled", true)
	v.SetDefault("report.schedule", "0 * * * *") // Every hour
	v.SetDefault("report.max_open_duration", 12*time.Hour)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.MaxFailedLogins < 0 {
		return fmt.Errorf("max failed logins must not be negative")
	}
	if c.Auth.MaxFailedLogins > 0 && c.Auth.LockoutWindow <= 0 {
		return fmt.Errorf("lockout window must be greater than 0 when login throttling is enabled")
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type != CacheTypeMemory && c.Cache.Type != CacheTypeRedis {
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
		}
	}

	if c.Report != nil && c.Report.Enabled {
		// Basic validation for cron format (5 fields)
		if len(strings.Fields(c.Report.Schedule)) != 5 {
			return fmt.Errorf("report schedule must be a valid cron expression with 5 fields (minute hour day month weekday)")
		}
		if c.Report.MaxOpenDuration <= 0 {
			return fmt.Errorf("report max open duration must be greater than 0")
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.SessionKey = strings.TrimSpace(c.SessionKey)

	if c.Database != nil {
		c.Database.Path = strings.TrimSpace(c.Database.Path)
	}

	if c.Cache != nil {
		c.Cache.RedisURL = strings.TrimSpace(c.Cache.RedisURL)
	}

	if c.Report != nil {
		c.Report.Schedule = strings.TrimSpace(c.Report.Schedule)
	}
}

// ThrottleEnabled reports whether failed logins are counted.
func (c *Config) ThrottleEnabled() bool {
	return c != nil && c.Auth != nil && c.Auth.MaxFailedLogins > 0
}
