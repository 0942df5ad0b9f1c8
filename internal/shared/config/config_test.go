package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ETIK_API_BASE_URL", "")
	t.Setenv("KAFKA_ENABLED", "")

	cfg := Load()

	if cfg.ETIK.BaseURL != "http://localhost:3000" {
		t.Errorf("unexpected ETIK base url %q", cfg.ETIK.BaseURL)
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka should be off by default")
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Errorf("unexpected base path %q", cfg.GetAPIBasePath())
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ETIK_API_TIMEOUT", "3s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("UPLOAD_ALLOWED_TYPES", "image/png")
	t.Setenv("JWT_EXPIRES_IN", "600")
	t.Setenv("RATE_LIMIT_SCAN_REQUESTS", "not-a-number")

	cfg := Load()

	if cfg.ETIK.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.ETIK.Timeout)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("unexpected kafka config %+v", cfg.Kafka)
	}
	if len(cfg.Upload.AllowedTypes) != 1 || cfg.Upload.AllowedTypes[0] != "image/png" {
		t.Errorf("unexpected upload types %v", cfg.Upload.AllowedTypes)
	}
	if cfg.JWT.JWTExpiresIn != 10*time.Minute {
		t.Errorf("jwt expiry = %v", cfg.JWT.JWTExpiresIn)
	}
	if cfg.RateLimit.ScanRequests != 120 {
		t.Errorf("invalid int should fall back, got %d", cfg.RateLimit.ScanRequests)
	}
}
