package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.drivefund.ng, https://ops.drivefund.ng")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}

	if cfg.DataSource != "mongo" || cfg.Port != "8080" || cfg.GetServerAddress() != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://ops.drivefund.ng" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Fatalf("window = %v", cfg.RateLimitWindow)
	}
	if cfg.AnalyticsPermission != "analytics:read" {
		t.Fatalf("analytics permission = %q", cfg.AnalyticsPermission)
	}
}

func TestLoadConfigAnalyticsPermissionOverride(t *testing.T) {
	t.Setenv("ANALYTICS_PERMISSION", "reports:view")

	if got := LoadConfig().AnalyticsPermission; got != "reports:view" {
		t.Fatalf("analytics permission = %q", got)
	}
}

func TestValidateConfigRejectsUnsafeProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg := LoadConfig()
	if err := cfg.ValidateConfig(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("err = %v, want JWT_SECRET error", err)
	}

	cfg.JWTSecret = "rotated"
	cfg.DataSource = "memory"
	if err := cfg.ValidateConfig(); err == nil || !strings.Contains(err.Error(), "memory") {
		t.Fatalf("err = %v, want memory data source error", err)
	}
}

func TestValidateConfigReportsEnvNames(t *testing.T) {
	cfg := LoadConfig()
	cfg.DataSource = "postgres"
	cfg.MinPoolSize = cfg.MaxPoolSize + 1

	err := cfg.ValidateConfig()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"DATA_SOURCE", "MONGO_MIN_POOL_SIZE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadStatusVocabularyDefaults(t *testing.T) {
	v, err := LoadStatusVocabulary("")
	if err != nil {
		t.Fatalf("LoadStatusVocabulary: %v", err)
	}
	if !v.IsSuccessful("Succeeded") || !v.IsConfirmedPoolInvestment("CONFIRMED") {
		t.Fatalf("defaults not applied: %+v", v)
	}
}

func TestLoadStatusVocabularyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	content := "successful_statuses: [\"SETTLED\"]\nopen_pool_statuses: [\"open\", \"Accepting\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	v, err := LoadStatusVocabulary(path)
	if err != nil {
		t.Fatalf("LoadStatusVocabulary: %v", err)
	}
	if !v.IsSuccessful("settled") || v.IsSuccessful("success") {
		t.Fatalf("successful statuses = %v", v.SuccessfulStatuses)
	}
	if v.PoolBucket("ACCEPTING") != "open" {
		t.Fatalf("open statuses = %v", v.OpenPoolStatuses)
	}
	if !v.IsDepositType("deposit") {
		t.Fatal("sets missing from the file should keep their defaults")
	}
}

func TestLoadStatusVocabularyRejectsEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	if err := os.WriteFile(path, []byte("return_types: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadStatusVocabulary(path); err == nil {
		t.Fatal("expected empty set to be rejected")
	}
}

func TestLoadStatusVocabularyMissingFile(t *testing.T) {
	if _, err := LoadStatusVocabulary(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
