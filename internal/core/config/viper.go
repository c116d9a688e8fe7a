package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	def := DefaultServerConfig()
	v.SetDefault("server.host", def.Host)
	v.SetDefault("server.port", def.Port)
	v.SetDefault("server.request_timeout", def.RequestTimeout)
	v.SetDefault("naming.cache_ttl", def.NamingCacheTTL)
	v.SetDefault("naming.timeout", def.NamingTimeout)
	v.SetDefault("naming.default_timezone", def.NamingTimezone)
	v.SetDefault("naming.audit_size", def.NamingAuditSize)
	v.SetDefault("naming.memory_limit_bytes", def.NamingMemoryLimit)

	// Bind environment variables with GS_ prefix
	v.SetEnvPrefix("GS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets are environment-only; reject them in config files.
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Host:              v.GetString("server.host"),
		Port:              v.GetInt("server.port"),
		RequestTimeout:    v.GetDuration("server.request_timeout"),
		NamingCacheTTL:    v.GetDuration("naming.cache_ttl"),
		NamingTimeout:     v.GetDuration("naming.timeout"),
		NamingTimezone:    v.GetString("naming.default_timezone"),
		NamingAuditSize:   v.GetInt("naming.audit_size"),
		NamingMemoryLimit: v.GetUint64("naming.memory_limit_bytes"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range and positive durations/sizes.
func validateConfig(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.NamingCacheTTL <= 0 {
		return fmt.Errorf("naming.cache_ttl must be positive, got %v", cfg.NamingCacheTTL)
	}
	if cfg.NamingTimeout <= 0 {
		return fmt.Errorf("naming.timeout must be positive, got %v", cfg.NamingTimeout)
	}
	if cfg.NamingAuditSize <= 0 {
		return fmt.Errorf("naming.audit_size must be positive, got %d", cfg.NamingAuditSize)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets.
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.IsSet("admin_secret") || v.IsSet("server.admin_secret") {
		return fmt.Errorf("admin secrets not allowed in config files (use GS_ADMIN_SECRET environment variable)")
	}
	return nil
}
