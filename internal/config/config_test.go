package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "SAR" || cfg.Income.Mode != "fixed" {
		t.Errorf("defaults = %+v", cfg)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultLedger = "office"
	cfg.Cashflow.MonthlyInflow = 12000
	cfg.Income = IncomeConfig{Mode: "seasonal", Base: 8000, Peak: 15000, PeakMonths: []int{6, 7, 8}}
	cfg.Scenario.RentPct = 10
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultLedger != "office" || got.Cashflow.MonthlyInflow != 12000 {
		t.Errorf("general/cashflow = %+v / %+v", got.General, got.Cashflow)
	}
	if got.Income.Mode != "seasonal" || len(got.Income.PeakMonths) != 3 || got.Scenario.RentPct != 10 {
		t.Errorf("income/scenario = %+v / %+v", got.Income, got.Scenario)
	}
}

func TestEnvOverrides(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("FINANCEFLOW_DB", "")
	t.Setenv("FINANCEFLOW_LEDGER", "")

	cfg := DefaultConfig()
	if got, want := GetDBPath(cfg), filepath.Join(dataHome, "financeflow", "financeflow.db"); got != want {
		t.Errorf("default db path = %q, want %q", got, want)
	}
	cfg.General.DBPath = "/tmp/from-config.db"
	cfg.General.DefaultLedger = "cfg-ledger"
	if got := GetDBPath(cfg); got != "/tmp/from-config.db" {
		t.Errorf("config db path = %q", got)
	}

	t.Setenv("FINANCEFLOW_DB", "/tmp/from-env.db")
	t.Setenv("FINANCEFLOW_LEDGER", "env-ledger")
	if got := GetDBPath(cfg); got != "/tmp/from-env.db" {
		t.Errorf("env db path = %q", got)
	}
	if got := GetDefaultLedger(cfg); got != "env-ledger" {
		t.Errorf("env ledger = %q", got)
	}
}

func TestAssumptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cashflow.MonthlyInflow = 5000
	cfg.Income = IncomeConfig{Mode: "seasonal", Base: 4000, Peak: 9000, PeakMonths: []int{12}}
	cfg.Scenario.RentPct = 20

	a := cfg.Assumptions()
	if a.Inflow != 5000 {
		t.Errorf("Inflow = %v", a.Inflow)
	}
	if got := a.Factors.For("rent"); got != 1.2 {
		t.Errorf("rent factor = %v, want 1.2", got)
	}
	if got := a.Income.ExpectedIncome("2025-12"); got != 9000 {
		t.Errorf("December income = %v, want 9000", got)
	}
	if got := a.Income.ExpectedIncome("2025-03"); got != 4000 {
		t.Errorf("March income = %v, want 4000", got)
	}
}
