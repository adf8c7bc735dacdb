// Package config loads financeflow settings and holds the regional pricing
// tables and seeded obligation templates.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "financeflow"

// Config holds all financeflow configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Cashflow   CashflowConfig   `toml:"cashflow"`
	Income     IncomeConfig     `toml:"income"`
	Scenario   ScenarioConfig   `toml:"scenario"`
	Pricing    PricingConfig    `toml:"pricing"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultLedger string `toml:"default_ledger,omitempty"`
	Currency      string `toml:"currency"`
	DBPath        string `toml:"db_path,omitempty"`
}

// CashflowConfig holds the inflow assumption for the cash gap model.
type CashflowConfig struct {
	MonthlyInflow float64 `toml:"monthly_inflow"`
}

// IncomeConfig selects and parameterizes the expected-income model.
type IncomeConfig struct {
	Mode       string             `toml:"mode"`
	Fixed      float64            `toml:"fixed,omitempty"`
	Base       float64            `toml:"base,omitempty"`
	Peak       float64            `toml:"peak,omitempty"`
	PeakMonths []int              `toml:"peak_months,omitempty"`
	Manual     map[string]float64 `toml:"manual,omitempty"`
}

// ScenarioConfig holds default percentage changes for forecasts.
type ScenarioConfig struct {
	RentPct        float64 `toml:"rent_pct"`
	UtilitiesPct   float64 `toml:"utilities_pct"`
	MaintenancePct float64 `toml:"maintenance_pct"`
	MarketingPct   float64 `toml:"marketing_pct"`
	SystemPct      float64 `toml:"system_pct"`
	OtherPct       float64 `toml:"other_pct"`
}

// PricingConfig holds the region used for price suggestions.
type PricingConfig struct {
	City string `toml:"city"`
	Size string `toml:"size"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "SAR",
		},
		Income: IncomeConfig{
			Mode: "fixed",
		},
		Pricing: PricingConfig{
			City: string(CityOther),
			Size: string(SizeMedium),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetDBPath returns the database path from env var, config, or the default
// data directory, in that order.
func GetDBPath(cfg Config) string {
	if p := strings.TrimSpace(os.Getenv("FINANCEFLOW_DB")); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "financeflow.db")
}

// GetDefaultLedger returns the ledger id from env var or config, in that order.
func GetDefaultLedger(cfg Config) string {
	if id := strings.TrimSpace(os.Getenv("FINANCEFLOW_LEDGER")); id != "" {
		return id
	}
	return cfg.General.DefaultLedger
}
