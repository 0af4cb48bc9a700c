package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete skydispatch configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Server  ServerConfig  `yaml:"server"`
	Discord DiscordConfig `yaml:"discord"`
	Store   StoreConfig   `yaml:"store"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// Footer is the fixed footer text on every embed reply.
	Footer string `yaml:"footer"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	MaxBodySize  string        `yaml:"max_body_size"` // e.g. "1MB", "65536"
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DiscordConfig holds the interaction signing settings.
type DiscordConfig struct {
	// PublicKey is the hex-encoded Ed25519 application public key.
	PublicKey string `yaml:"public_key"`
}

// Store drivers.
const (
	DriverFirebase = "firebase"
	DriverLocal    = "local"
)

// StoreConfig selects and configures the backing stores.
type StoreConfig struct {
	Driver       string         `yaml:"driver"`
	ProbeTimeout time.Duration  `yaml:"probe_timeout"` // 0 disables the init probe
	Firebase     FirebaseConfig `yaml:"firebase"`
	Local        LocalConfig    `yaml:"local"`
}

// FirebaseConfig holds the service-account identity for Firestore and the Realtime Database.
type FirebaseConfig struct {
	ProjectID   string `yaml:"project_id"`
	ClientEmail string `yaml:"client_email"`
	// PrivateKey is the raw key as delivered; it is normalized at startup.
	PrivateKey  string `yaml:"private_key"`
	DatabaseURL string `yaml:"database_url"`
}

// LocalConfig configures the development driver.
type LocalConfig struct {
	Path     string `yaml:"path"`
	RedisURL string `yaml:"redis_url,omitempty"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:      "skydispatch",
			LogLevel:  "info",
			LogFormat: "json",
			Footer:    "Virtual Skies IBM Application",
		},
		Server: ServerConfig{
			Port:         8080,
			MaxBodySize:  "1MB",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Driver:       DriverFirebase,
			ProbeTimeout: 10 * time.Second,
			Local: LocalConfig{
				Path: "./data/skydispatch.db",
			},
		},
	}
}
