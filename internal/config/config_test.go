// AngelaMos | 2026
// config_test.go

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/medisupply",
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
		},
		Keycloak: KeycloakConfig{
			BaseURL: "http://localhost:8081",
			Realm:   "medisupply-realm",
			Timeout: 30 * time.Second,
		},
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	t.Parallel()

	if err := validate(validConfig()); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.Database.URL = "" }},
		{"missing redis url", func(c *Config) { c.Redis.URL = "" }},
		{"missing keycloak base url", func(c *Config) { c.Keycloak.BaseURL = "" }},
		{"missing keycloak realm", func(c *Config) { c.Keycloak.Realm = "" }},
		{"malformed keycloak base url", func(c *Config) { c.Keycloak.BaseURL = "not a url" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			if err := validate(cfg); err == nil {
				t.Fatal("validate() = nil, want error")
			}
		})
	}
}

func TestValidateStorageCredentials(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Storage.Enabled = true
	cfg.Storage.Endpoint = "localhost:9000"

	err := validate(cfg)
	if err == nil {
		t.Fatal("validate() = nil, want credentials error")
	}

	cfg.Storage.AccessKey = "minioadmin"
	cfg.Storage.SecretKey = "minioadmin"

	if err := validate(cfg); err != nil {
		t.Fatalf("validate() = %v, want nil", err)
	}
}

func TestValidateCORSWildcardWithCredentials(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.CORS.AllowCredentials = true
	cfg.CORS.AllowedOrigins = []string{"*"}

	if err := validate(cfg); err == nil {
		t.Fatal("validate() = nil, want wildcard error")
	}
}

func TestKeycloakURLs(t *testing.T) {
	t.Parallel()

	kc := KeycloakConfig{
		BaseURL: "http://kc:8081",
		Realm:   "medisupply-realm",
	}

	if got := kc.TokenURL("master"); got != "http://kc:8081/realms/master/protocol/openid-connect/token" {
		t.Fatalf("TokenURL(master) = %q", got)
	}

	if got := kc.TokenURL(kc.Realm); !strings.Contains(got, "/realms/medisupply-realm/") {
		t.Fatalf("TokenURL(realm) = %q, want realm path", got)
	}

	if got := kc.LogoutURL(); got != "http://kc:8081/realms/medisupply-realm/protocol/openid-connect/logout" {
		t.Fatalf("LogoutURL() = %q", got)
	}

	if got := kc.JWKSURL(); got != "http://kc:8081/realms/medisupply-realm/protocol/openid-connect/certs" {
		t.Fatalf("JWKSURL() = %q", got)
	}

	if got := kc.Issuer(); got != "http://kc:8081/realms/medisupply-realm" {
		t.Fatalf("Issuer() = %q", got)
	}

	if got := kc.AdminURL("users", "abc", "role-mappings", "realm"); got != "http://kc:8081/admin/realms/medisupply-realm/users/abc/role-mappings/realm" {
		t.Fatalf("AdminURL() = %q", got)
	}
}
