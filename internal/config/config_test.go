package config

import (
	"strings"
	"testing"
	"time"

	"storefront-app/internal/secret"
)

func validConfig() Config {
	return Config{
		App:  AppConfig{Env: "local", Port: 8080, BaseURL: "https://app.example.com"},
		Auth: AuthConfig{JWTSecret: secret.New("jwt-secret")},
		BigCommerce: BigCommerceConfig{
			ClientID:     "client",
			ClientSecret: secret.New("client-secret"),
		},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, key := range []string{"APP_ENV", "JWT_SECRET", "BC_CLIENT_ID", "BC_CLIENT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestValidate_AppliesPlatformDefaults(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.BigCommerce.APIBaseURL != defaultAPIBaseURL || c.BigCommerce.LoginBaseURL != defaultLoginBaseURL {
		t.Fatalf("expected default base urls, got %q %q", c.BigCommerce.APIBaseURL, c.BigCommerce.LoginBaseURL)
	}
	if c.BigCommerce.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", c.BigCommerce.Timeout)
	}
	if c.HasPostgres() || c.HasRedis() {
		t.Fatalf("expected optional backends disabled")
	}
}

func TestValidate_ProductionRequiresDatabase(t *testing.T) {
	c := validConfig()
	c.App.Env = "production"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_HOST")
	}

	c.DB = DBConfig{Host: "db", Port: 5432, User: "app", Name: "app"}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := validConfig()
	c.DB = DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: secret.New("x"), Name: "app"}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}

func TestValidate_RejectsRelativeBaseURL(t *testing.T) {
	c := validConfig()
	c.App.BaseURL = "/relative"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for relative APP_BASE_URL")
	}
}

func TestLoad_ReadsEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_BASE_URL", "https://app.example.com/")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("BC_CLIENT_ID", "id")
	t.Setenv("BC_CLIENT_SECRET", "shh")
	t.Setenv("BC_TIMEOUT", "3s")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.BaseURL != "https://app.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", c.App.BaseURL)
	}
	if c.BigCommerce.ClientSecret.Expose() != "shh" || c.BigCommerce.Timeout != 3*time.Second {
		t.Fatalf("unexpected platform config: %+v", c.BigCommerce)
	}
	if c.HTTPAddr() != ":9000" {
		t.Fatalf("unexpected addr %q", c.HTTPAddr())
	}
}
