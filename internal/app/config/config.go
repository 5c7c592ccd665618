package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"seatservice/internal/domain/account"
	"seatservice/internal/domain/admission"
)

type Config struct {
	DatabaseURL  string          `yaml:"database_url"`
	HTTPAddr     string          `yaml:"http_addr"`
	LogLevel     string          `yaml:"log_level"`
	EventWorkers int             `yaml:"event_workers"`
	Auth         AuthConfig      `yaml:"auth"`
	CORS         CORSConfig      `yaml:"cors"`
	Admission    AdmissionConfig `yaml:"admission"`
	Links        LinksConfig     `yaml:"links"`
}

type AuthConfig struct {
	Disabled bool   `yaml:"disabled"`
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type AdmissionConfig struct {
	MaxFreeActivatedUsers int      `yaml:"max_free_activated_users"`
	FreePlans             []string `yaml:"free_plans"`
}

type LinksConfig struct {
	UpgradeURL string `yaml:"upgrade_url"`
	SalesURL   string `yaml:"sales_url"`
}

func defaults() Config {
	return Config{
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		EventWorkers: 4,
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Admission: AdmissionConfig{
			MaxFreeActivatedUsers: admission.MaxFreeActivatedUsers,
			FreePlans:             append([]string(nil), account.DefaultFreePlans...),
		},
		Links: LinksConfig{
			UpgradeURL: "/plan/upgrade",
			SalesURL:   "https://about.codecov.io/sales",
		},
	}
}

// Load reads, in increasing priority: built-in defaults, the YAML file named
// by CONFIG_FILE, a .env file in the working directory, then the process
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if !cfg.Auth.Disabled && cfg.Auth.Secret == "" {
		return Config{}, fmt.Errorf("AUTH_SECRET is required unless AUTH_DISABLED=true")
	}
	if cfg.Admission.MaxFreeActivatedUsers < 0 {
		return Config{}, fmt.Errorf("max free activated users must not be negative")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Auth.Secret, "AUTH_SECRET")
	setString(&cfg.Auth.Issuer, "AUTH_ISSUER")
	setString(&cfg.Links.UpgradeURL, "UPGRADE_URL")
	setString(&cfg.Links.SalesURL, "SALES_URL")
	setList(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setList(&cfg.Admission.FreePlans, "FREE_PLANS")

	if v := os.Getenv("AUTH_DISABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTH_DISABLED: %w", err)
		}
		cfg.Auth.Disabled = b
	}
	if err := setInt(&cfg.EventWorkers, "EVENT_WORKERS"); err != nil {
		return err
	}
	return setInt(&cfg.Admission.MaxFreeActivatedUsers, "MAX_FREE_ACTIVATED_USERS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
