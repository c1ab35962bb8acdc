package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"treasury/database"
	"treasury/models"

	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Run configuration
	RunTimeout         time.Duration
	WatchdogGrace      time.Duration
	AsOfDate           time.Time // zero unless AS_OF_DATE is set
	Location           *time.Location
	DayCountConvention string
	FailOnEntityErrors bool

	// Run lock (disabled when RedisURL is empty)
	RedisURL   string
	RunLockKey string

	// Posting event forwarding (disabled when NATSURL is empty)
	NATSURL           string
	NATSSubjectPrefix string

	LogLevel log.Level

	// Environment
	Environment string // "development", "production" or "test"
}

const (
	defaultRunTimeout    = 30 * time.Minute
	defaultWatchdogGrace = 15 * time.Second
	defaultRunLockKey    = "treasury:interest-accrual:lock"
	defaultSubjectPrefix = "treasury"
)

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		RunTimeout:         defaultRunTimeout,
		WatchdogGrace:      defaultWatchdogGrace,
		Location:           time.UTC,
		DayCountConvention: "nominal",
		FailOnEntityErrors: true,

		RedisURL:   os.Getenv("REDIS_URL"),
		RunLockKey: defaultRunLockKey,

		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: defaultSubjectPrefix,

		LogLevel: log.InfoLevel,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if v := os.Getenv("RUN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RUN_TIMEOUT %q", v)
		}
		config.RunTimeout = d
	}
	if v := os.Getenv("WATCHDOG_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid WATCHDOG_GRACE %q", v)
		}
		config.WatchdogGrace = d
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", v, err)
		}
		config.Location = loc
	}
	if v := os.Getenv("AS_OF_DATE"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, fmt.Errorf("invalid AS_OF_DATE %q (want YYYY-MM-DD): %w", v, err)
		}
		config.AsOfDate = d
	}
	if v := os.Getenv("DAY_COUNT_CONVENTION"); v != "" {
		config.DayCountConvention = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("FAIL_ON_ENTITY_ERRORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FAIL_ON_ENTITY_ERRORS %q", v)
		}
		config.FailOnEntityErrors = b
	}
	if v := os.Getenv("RUN_LOCK_KEY"); v != "" {
		config.RunLockKey = v
	}
	if v := os.Getenv("NATS_SUBJECT_PREFIX"); v != "" {
		config.NATSSubjectPrefix = strings.Trim(v, ".")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		config.LogLevel = level
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// ConnectionURL returns DATABASE_URL with DATABASE_NAME applied
func (c *Config) ConnectionURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Today returns the run's as-of date: AS_OF_DATE when set, otherwise the
// calendar date of now in the configured location.
func (c *Config) Today(now time.Time) time.Time {
	if !c.AsOfDate.IsZero() {
		return models.DateOf(c.AsOfDate)
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now.In(loc))
}

// LockTTL is how long the run lock survives a crashed holder
func (c *Config) LockTTL() time.Duration {
	return c.RunTimeout + c.WatchdogGrace
}
