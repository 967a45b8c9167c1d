package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix scopes every variable read by Load.
const EnvPrefix = "CUSTOMER_"

// Store drivers understood by the server binary.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config aggregates the service configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Store   StoreConfig   `koanf:"store" validate:"required"`
	Log     LogConfig     `koanf:"log" validate:"required"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr              string        `koanf:"addr" validate:"required"`
	BasePath          string        `koanf:"base_path"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// StoreConfig selects the customer backend.
type StoreConfig struct {
	Driver     string `koanf:"driver" validate:"oneof=memory sqlite"`
	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
	Seed       bool   `koanf:"seed"`
}

// LogConfig controls the root zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
		},
		Store: StoreConfig{
			Driver:     DriverMemory,
			SQLitePath: "data/customers.db",
			Seed:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads CUSTOMER_* environment variables on top of Default.
// CUSTOMER_SERVER_ADDR maps to server.addr, CUSTOMER_STORE_SQLITE_PATH to
// store.sqlite_path: only the first underscore after the prefix nests.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		key = strings.Replace(key, "_", ".", 1)
		if _, ok := listKeys[key]; ok {
			return key, splitList(v)
		}
		return key, v
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if !k.Exists("server.addr") {
		// PORT keeps the plain deployment contract working.
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.Server.Addr = port
		}
	}

	addr, err := normalizeAddr(cfg.Server.Addr)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr
	cfg.Server.BasePath = normalizeBasePath(cfg.Server.BasePath)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// listKeys are comma separated in the environment.
var listKeys = map[string]struct{}{
	"server.cors_origins": {},
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func normalizeAddr(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return ":8080", nil
	}
	if strings.Contains(addr, " ") {
		return "", fmt.Errorf("invalid listen address: %q", raw)
	}
	if strings.Contains(addr, ":") {
		return addr, nil
	}
	return ":" + addr, nil
}

func normalizeBasePath(raw string) string {
	p := strings.Trim(strings.TrimSpace(raw), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
