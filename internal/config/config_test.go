package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PORT", "JWT_EXPIRY", "PORT", "RATE_LIMIT_PER_MIN"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBDriver != "postgres" {
		t.Fatalf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.DBPort != "5432" {
		t.Fatalf("DBPort = %q, want 5432", cfg.DBPort)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Fatalf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.Port != "5000" {
		t.Fatalf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Fatalf("RateLimitPerMin = %d, want 120", cfg.RateLimitPerMin)
	}
}

func TestLoadMySQLPortAndOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("AUTH_RATE_LIMIT_PER_MIN", "0")

	cfg := Load()

	if cfg.DBPort != "3306" {
		t.Fatalf("DBPort = %q, want 3306", cfg.DBPort)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Fatalf("invalid JWT_EXPIRY should fall back, got %v", cfg.JWTExpiry)
	}
	if cfg.AuthRateLimitPerMin != 0 {
		t.Fatalf("AuthRateLimitPerMin = %d, want 0", cfg.AuthRateLimitPerMin)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		expect []string
	}{
		{
			name: "postgres",
			cfg: Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "vet",
				DBPassword: "secret", DBName: "pashudrishti", DBSSLMode: "disable"},
			expect: []string{"host=db", "user=vet", "password=secret", "dbname=pashudrishti", "port=5432", "sslmode=disable"},
		},
		{
			name: "mysql",
			cfg: Config{DBDriver: "mysql", DBHost: "127.0.0.1", DBPort: "3306", DBUser: "root",
				DBPassword: "pw", DBName: "pashudrishti"},
			expect: []string{"root:pw@tcp(127.0.0.1:3306)/pashudrishti", "parseTime=true", "charset=utf8mb4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.DSN()
			for _, part := range tt.expect {
				if !strings.Contains(dsn, part) {
					t.Errorf("DSN %q missing %q", dsn, part)
				}
			}
		})
	}
}
