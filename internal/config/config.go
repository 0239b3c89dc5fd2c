package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort     = 8080
	defaultEnv      = "development"
	defaultDSN      = "root:password@tcp(127.0.0.1:3306)/dsp_forms?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// FORMS_* environment variables taking precedence.
type AppConfig struct {
	Port           int      `yaml:"port"`
	DSN            string   `yaml:"dsn"` // MySQL DSN
	RedisURL       string   `yaml:"redis_url"`
	Env            string   `yaml:"env"` // "development" | "production"
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

// Load reads the YAML config file at path. A missing file is not an error;
// defaults and environment overrides still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env/defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("FORMS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("FORMS_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("FORMS_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("FORMS_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("FORMS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("FORMS_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		cfg.DSN = defaultDSN
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		cfg.RedisURL = defaultRedisURL
	}
}
