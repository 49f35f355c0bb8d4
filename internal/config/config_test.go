package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.ExpiryWindow != 30*time.Second || cfg.TickInterval != time.Second {
		t.Errorf("lifecycle defaults = %s/%s", cfg.ExpiryWindow, cfg.TickInterval)
	}
	if cfg.PlatformFeePct != 0 {
		t.Errorf("platform fee default = %f, want 0", cfg.PlatformFeePct)
	}
	if cfg.RoutedCorrection != 1.2 || cfg.DirectCorrection != 1.3 || cfg.UrbanSpeedKmh != 30 {
		t.Errorf("distance defaults = %f/%f/%f", cfg.RoutedCorrection, cfg.DirectCorrection, cfg.UrbanSpeedKmh)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("NOTIFICATION_EXPIRY_WINDOW", "45s")
	t.Setenv("PLATFORM_FEE_PCT", "0.2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.ExpiryWindow != 45*time.Second {
		t.Errorf("expiry window = %s", cfg.ExpiryWindow)
	}
	if cfg.PlatformFeePct != 0.2 {
		t.Errorf("platform fee = %f", cfg.PlatformFeePct)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"platform fee above 1", "PLATFORM_FEE_PCT", "1.5"},
		{"platform fee not a number", "PLATFORM_FEE_PCT", "twenty"},
		{"bad expiry duration", "NOTIFICATION_EXPIRY_WINDOW", "soon"},
		{"negative tick", "LIFECYCLE_TICK_INTERVAL", "-1s"},
		{"zero urban speed", "URBAN_SPEED_KMH", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := LoadServerConfig(); err == nil {
				t.Errorf("%s=%s should fail validation", tc.key, tc.value)
			}
		})
	}
}
