package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "remark_crm.db"
	defaultDataDir      = "./data"
	defaultSeedWorkbook = "CRM_leads_REMARK_FIXED.xlsx"
	defaultTimezone     = "Europe/Bratislava"
)

// Config is the runtime configuration of the CRM backend
type Config struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string
	DataDir      string
	SeedWorkbook string
	Timezone     string

	// AutoImport controls whether leads.xlsx / leads.csv dropped into the
	// data dir are merged once at startup.
	AutoImport bool
}

// Load reads configuration from the environment, applying defaults and
// validating the result.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("REMARK_CRM_DB"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	}

	cfg.DataDir = getEnv("DATA_DIR", defaultDataDir)
	cfg.SeedWorkbook = getEnv("SEED_WORKBOOK", filepath.Join(cfg.DataDir, defaultSeedWorkbook))
	cfg.Timezone = getEnv("TIMEZONE", defaultTimezone)
	cfg.AutoImport = parseBoolEnv("AUTO_IMPORT", "true")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func validate(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE value %q: %w", cfg.Timezone, err)
	}
	return nil
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(name, fallback string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if v == "" {
		v = fallback
	}
	return v == "1" || v == "true" || v == "yes"
}
