package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Environment variables read on top of the config file. The first six are the
// names used by the existing deployments.
const (
	EnvProjectID   = "V2S_FIREBASE_PROJECT_ID"
	EnvClientEmail = "V2S_FIREBASE_CLIENT_EMAIL"
	EnvPrivateKey  = "V2S_FIREBASE_PRIVATE_KEY"
	EnvDatabaseURL = "V2S_FIREBASE_DATABASE_URL"
	EnvPublicKey   = "DISCORD_PUBLIC_KEY"
	EnvPort        = "PORT"

	EnvLogLevel    = "SKYDISPATCH_LOG_LEVEL"
	EnvLogFormat   = "SKYDISPATCH_LOG_FORMAT"
	EnvStoreDriver = "SKYDISPATCH_STORE_DRIVER"
	EnvLocalPath   = "SKYDISPATCH_LOCAL_PATH"
	EnvFooter      = "SKYDISPATCH_FOOTER"
	EnvMaxBodySize = "SKYDISPATCH_MAX_BODY_SIZE"
	EnvRedisURL    = "REDIS_URL"
)

// Load builds the configuration from defaults, an optional YAML file and the
// process environment, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()

	if configPath != "" {
		if err := loadConfigFile(cfg, configPath, lookup); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadConfigFile parses path over cfg so unset keys keep their defaults.
func loadConfigFile(cfg *Config, path string, lookup func(string) (string, bool)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	interpolated := interpolateEnv(string(data), lookup)
	if m := envVarPattern.FindStringSubmatch(interpolated); m != nil {
		return fmt.Errorf("%s: environment variable ${%s} is not set", absPath, m[1])
	}

	if err := yaml.Unmarshal([]byte(interpolated), cfg); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", absPath, err)
	}
	return nil
}

func interpolateEnv(input string, lookup func(string) (string, bool)) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := lookup(varName); exists {
			return value
		}
		// Left in place; loadConfigFile reports it.
		return match
	})
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(EnvProjectID, &cfg.Store.Firebase.ProjectID)
	set(EnvClientEmail, &cfg.Store.Firebase.ClientEmail)
	set(EnvPrivateKey, &cfg.Store.Firebase.PrivateKey)
	set(EnvDatabaseURL, &cfg.Store.Firebase.DatabaseURL)
	set(EnvPublicKey, &cfg.Discord.PublicKey)
	set(EnvLogLevel, &cfg.Service.LogLevel)
	set(EnvLogFormat, &cfg.Service.LogFormat)
	set(EnvStoreDriver, &cfg.Store.Driver)
	set(EnvLocalPath, &cfg.Store.Local.Path)
	set(EnvRedisURL, &cfg.Store.Local.RedisURL)
	set(EnvFooter, &cfg.Service.Footer)
	set(EnvMaxBodySize, &cfg.Server.MaxBodySize)

	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	return nil
}

func validate(cfg *Config) error {
	cfg.Service.LogLevel = strings.ToLower(cfg.Service.LogLevel)
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}

	cfg.Service.LogFormat = strings.ToLower(cfg.Service.LogFormat)
	if cfg.Service.LogFormat != "json" && cfg.Service.LogFormat != "text" {
		return fmt.Errorf("service.log_format must be json or text (got %q)", cfg.Service.LogFormat)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port)
	}
	if _, err := ParseByteSize(cfg.Server.MaxBodySize); err != nil {
		return fmt.Errorf("server.max_body_size: %w", err)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}

	switch cfg.Store.Driver {
	case DriverFirebase:
	case DriverLocal:
		if cfg.Store.Local.Path == "" {
			return fmt.Errorf("store.local.path is required for the local driver")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverFirebase, DriverLocal, cfg.Store.Driver)
	}
	if cfg.Store.ProbeTimeout < 0 {
		return fmt.Errorf("store.probe_timeout must not be negative")
	}

	// Firebase identity and the public key are deliberately not required here:
	// missing values leave the store not ready, or reject every POST, without
	// stopping the process.
	return nil
}

// ParseByteSize parses size strings like "1MB", "64KB" or "2048576" to bytes.
// An empty string parses as 0.
func ParseByteSize(size string) (int64, error) {
	if size == "" {
		return 0, nil
	}

	upper := strings.ToUpper(strings.TrimSpace(size))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(upper, "KB"):
		multiplier = 1024
		upper = strings.TrimSuffix(upper, "KB")
	case strings.HasSuffix(upper, "MB"):
		multiplier = 1024 * 1024
		upper = strings.TrimSuffix(upper, "MB")
	case strings.HasSuffix(upper, "GB"):
		multiplier = 1024 * 1024 * 1024
		upper = strings.TrimSuffix(upper, "GB")
	}

	value, err := strconv.ParseInt(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q", size)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	if value > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size too large")
	}
	return value * multiplier, nil
}
