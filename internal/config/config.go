package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig captures all tunable parameters for the engine process.
// Values are primarily loaded from environment variables with sane defaults
// so the binary can run locally without excessive setup.
type ServerConfig struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Lifecycle
	ExpiryWindow time.Duration
	TickInterval time.Duration

	// Fare
	PlatformFeePct float64 // fraction of total fare, 0..1

	// Distance resolution
	RouteEndpoint    string
	RouteTimeout     time.Duration
	RoutedCorrection float64
	DirectCorrection float64
	UrbanSpeedKmh    float64

	RedisAddr     string
	RedisPassword string
	PointsKey     string

	KafkaBrokers []string
	KafkaTopic   string

	PGDSN string

	LogLevel      string
	RunMigrations bool
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:         ":8080",
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     10 * time.Second,
		IdleTimeout:      120 * time.Second,
		ShutdownTimeout:  15 * time.Second,
		ExpiryWindow:     30 * time.Second,
		TickInterval:     time.Second,
		PlatformFeePct:   0,
		RouteTimeout:     2 * time.Second,
		RoutedCorrection: 1.2,
		DirectCorrection: 1.3,
		UrbanSpeedKmh:    30,
		PointsKey:        "driver:points",
		KafkaTopic:       "ride-lifecycle",
		LogLevel:         "info",
	}
}

func LoadServerConfig() (ServerConfig, error) {
	cfg := defaultServerConfig()
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	setDurationFromEnv(&cfg.ExpiryWindow, "NOTIFICATION_EXPIRY_WINDOW", &errs)
	setDurationFromEnv(&cfg.TickInterval, "LIFECYCLE_TICK_INTERVAL", &errs)

	setFloatFromEnv(&cfg.PlatformFeePct, "PLATFORM_FEE_PCT", &errs)

	setStringFromEnv(&cfg.RouteEndpoint, "ROUTE_ENDPOINT")
	setDurationFromEnv(&cfg.RouteTimeout, "ROUTE_TIMEOUT", &errs)
	setFloatFromEnv(&cfg.RoutedCorrection, "ROUTED_CORRECTION", &errs)
	setFloatFromEnv(&cfg.DirectCorrection, "DIRECT_CORRECTION", &errs)
	setFloatFromEnv(&cfg.UrbanSpeedKmh, "URBAN_SPEED_KMH", &errs)

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	setStringFromEnv(&cfg.PointsKey, "REDIS_POINTS_KEY")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, "KAFKA_TOPIC")

	cfg.PGDSN = os.Getenv("PG_DSN")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.RunMigrations = strings.EqualFold(os.Getenv("MIGRATE"), "true")

	if cfg.PlatformFeePct < 0 || cfg.PlatformFeePct > 1 {
		errs = append(errs, fmt.Errorf("PLATFORM_FEE_PCT must be in [0,1]"))
	}
	if cfg.ExpiryWindow <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATION_EXPIRY_WINDOW must be > 0"))
	}
	if cfg.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("LIFECYCLE_TICK_INTERVAL must be > 0"))
	}
	if cfg.UrbanSpeedKmh <= 0 {
		errs = append(errs, fmt.Errorf("URBAN_SPEED_KMH must be > 0"))
	}

	return cfg, errors.Join(errs...)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setFloatFromEnv(target *float64, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = f
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
