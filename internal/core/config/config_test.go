package config

import (
	"os"
	"testing"
	"time"
)

func TestAdminSecrets(t *testing.T) {
	os.Unsetenv("GS_ADMIN_SECRET")
	os.Unsetenv("GS_ADMIN_SECRET_1")
	os.Unsetenv("GS_ADMIN_SECRET_2")

	t.Run("single secret", func(t *testing.T) {
		os.Setenv("GS_ADMIN_SECRET", "0123456789abcdef0123456789abcdef:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")
		defer os.Unsetenv("GS_ADMIN_SECRET")

		secrets, err := AdminSecrets()
		if err != nil {
			t.Fatalf("AdminSecrets failed: %v", err)
		}
		if len(secrets) != 1 {
			t.Errorf("expected 1 secret, got %d", len(secrets))
		}
		if _, ok := secrets["0123456789abcdef0123456789abcdef"]; !ok {
			t.Errorf("secret_id not found in map")
		}
	})

	t.Run("multiple numbered secrets", func(t *testing.T) {
		os.Setenv("GS_ADMIN_SECRET_1", "0123456789abcdef0123456789abcdef:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")
		os.Setenv("GS_ADMIN_SECRET_2", "fedcba9876543210fedcba9876543210:YW5vdGhlcnNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")
		defer os.Unsetenv("GS_ADMIN_SECRET_1")
		defer os.Unsetenv("GS_ADMIN_SECRET_2")

		secrets, err := AdminSecrets()
		if err != nil {
			t.Fatalf("AdminSecrets failed: %v", err)
		}
		if len(secrets) != 2 {
			t.Errorf("expected 2 secrets, got %d", len(secrets))
		}
	})

	t.Run("no secrets configured", func(t *testing.T) {
		secrets, err := AdminSecrets()
		if err != nil {
			t.Fatalf("AdminSecrets failed: %v", err)
		}
		if len(secrets) != 0 {
			t.Errorf("expected 0 secrets, got %d", len(secrets))
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		os.Setenv("GS_ADMIN_SECRET", "invalid_format")
		defer os.Unsetenv("GS_ADMIN_SECRET")

		_, err := AdminSecrets()
		if err == nil {
			t.Error("expected error for invalid format")
		}
	})

	t.Run("duplicate secret_id", func(t *testing.T) {
		os.Setenv("GS_ADMIN_SECRET_1", "0123456789abcdef0123456789abcdef:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")
		os.Setenv("GS_ADMIN_SECRET_2", "0123456789abcdef0123456789abcdef:YW5vdGhlcnNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")
		defer os.Unsetenv("GS_ADMIN_SECRET_1")
		defer os.Unsetenv("GS_ADMIN_SECRET_2")

		_, err := AdminSecrets()
		if err == nil {
			t.Error("expected error for duplicate secret_id")
		}
	})
}

func TestParseSecretWithID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "0123456789abcdef0123456789abcdef:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", false},
		{"missing colon", "0123456789abcdef0123456789abcdef", true},
		{"short secret_id", "abc:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", true},
		{"non-hex secret_id", "0123456789abcdefGHIJKLMNOPQRSTUV:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", true},
		{"bad base64", "0123456789abcdef0123456789abcdef:!!!not-base64!!!", true},
		{"secret too short", "0123456789abcdef0123456789abcdef:c2hvcnQ=", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secretID, secret, err := ParseSecretWithID(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSecretWithID() error = %v, wantErr %t", err, tt.wantErr)
			}
			if err == nil {
				if len(secretID) != 32 {
					t.Errorf("len(secretID) = %d, want 32", len(secretID))
				}
				if len(secret) < 32 {
					t.Errorf("len(secret) = %d, want >= 32", len(secret))
				}
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// With no file, flags, or environment the loaded config must be
	// exactly the package defaults.
	if want := DefaultServerConfig(); *cfg != *want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
	if cfg.NamingCacheTTL != 5*time.Minute {
		t.Errorf("NamingCacheTTL = %v, want 5m", cfg.NamingCacheTTL)
	}
	if cfg.NamingTimeout != 5*time.Second {
		t.Errorf("NamingTimeout = %v, want 5s", cfg.NamingTimeout)
	}
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	os.Setenv("GS_SERVER_PORT", "9001")
	defer os.Unsetenv("GS_SERVER_PORT")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != 9001 {
		t.Errorf("Port = %d, want 9001 from environment", cfg.Port)
	}
}

func TestLoadConfig_RejectsSecretsInFile(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	if err := os.WriteFile(path, []byte("admin_secret: sneaky\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for secret in config file")
	}
}
