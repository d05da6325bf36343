package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_TTL", "KAFKA_BROKERS", "BLOB_BACKEND", "FEED_MAX_LIMIT", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTTTL != 72*time.Hour {
		t.Errorf("JWTTTL = %v, want 72h", cfg.JWTTTL)
	}
	if cfg.BlobBackend != "none" {
		t.Errorf("BlobBackend = %q, want none", cfg.BlobBackend)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("KafkaBrokers = %v, want none", cfg.KafkaBrokers)
	}
	if cfg.FeedMaxLimit != 50 || cfg.RateLimitPerMinute != 60 {
		t.Errorf("limits = %d/%d, want 50/60", cfg.FeedMaxLimit, cfg.RateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("BLOB_BACKEND", "GridFS")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("FEED_MAX_LIMIT", "-4")
	cfg := Load()

	if cfg.Port != "3000" || cfg.JWTTTL != 15*time.Minute {
		t.Errorf("port/ttl = %q/%v", cfg.Port, cfg.JWTTTL)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.BlobBackend != "gridfs" || !cfg.S3UseSSL {
		t.Errorf("blob = %q ssl=%v", cfg.BlobBackend, cfg.S3UseSSL)
	}
	if cfg.FeedMaxLimit != 50 {
		t.Errorf("FeedMaxLimit = %d, want fallback 50", cfg.FeedMaxLimit)
	}
}

func TestInitDBRequiresPostgres(t *testing.T) {
	if _, err := InitDB(&Config{}); err == nil {
		t.Fatal("InitDB without POSTGRES_CONN_STR succeeded")
	}
}
