package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

var dashNow = time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local)

func sampleLoad() (model.Ledger, pipeline.Dataset, error) {
	l := model.Ledger{ID: "L1", Name: "Olaya Office", Budgets: model.Budgets{MonthlyTarget: 3000}}
	ds := pipeline.Dataset{Items: []model.RecurringItem{
		{ID: "rent", LedgerID: "L1", Title: "Office rent", Category: model.CategoryOperational,
			Frequency: model.Monthly, Amount: 2000, NextDueDate: model.Day(2025, 3, 7), Status: model.StatusOpen},
		{ID: "cr", LedgerID: "L1", Title: "Commercial registration", Category: model.CategorySystem,
			Frequency: model.Yearly, Required: true, Status: model.StatusOpen},
		{ID: "ads", LedgerID: "L1", Title: "Listing ads", Category: model.CategoryMarketing,
			Frequency: model.Monthly, Amount: 300, NextDueDate: model.Day(2025, 3, 12), Status: model.StatusOpen},
	}}
	return l, ds, nil
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(Options{Currency: "SAR", Clock: model.FixedClock(dashNow)}, sampleLoad)
	l, ds, _ := sampleLoad()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Ledger: l, Dataset: ds})
	return m.(App)
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 50); got != -1 {
			t.Errorf("x past the tabs -> %d, want -1", got)
		}
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := loadedApp(t)
	x := len("Radar") + 2 + 1 + 1 // inside "Plan"
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabPlan {
		t.Errorf("activeTab = %d, want %d", got, tabPlan)
	}
}

func TestKeysSwitchTabsAndMoveInboxCursor(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	a = m.(App)
	if a.activeTab != tabInbox {
		t.Fatalf("activeTab = %d, want inbox", a.activeTab)
	}
	if len(a.analysis.Inbox) < 2 {
		t.Fatalf("inbox has %d entries, want at least 2", len(a.analysis.Inbox))
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	a = m.(App)
	if a.inboxCursor != 1 {
		t.Errorf("inboxCursor = %d, want 1", a.inboxCursor)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.(App).activeTab; got != tabForecast {
		t.Errorf("right -> tab %d, want forecast", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.(App).activeTab; got != tabVariance {
		t.Errorf("left wraps to tab %d, want variance", got)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t)
	for i := range components.Tabs {
		a.activeTab = i
		out := a.View()
		if !strings.Contains(out, "Olaya Office") {
			t.Errorf("tab %d view lost the ledger title", i)
		}
		if got := len(strings.Split(out, "\n")); got != 40 {
			t.Errorf("tab %d view height = %d, want 40", i, got)
		}
	}
}

func TestLoadErrorView(t *testing.T) {
	a := NewApp(Options{Clock: model.FixedClock(dashNow)}, nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Err: errors.New("ledger \"x\": not found")})
	if out := m.View(); !strings.Contains(out, "Could not load ledger") {
		t.Errorf("error view missing:\n%s", out)
	}
}

func TestSetupValuesApply(t *testing.T) {
	v := SetupValues{Currency: " usd ", City: "الرياض", Size: "LARGE", Inflow: "12,500", Theme: "tokyo-night"}
	if err := validateCurrency(v.Currency); err != nil {
		t.Fatalf("validateCurrency: %v", err)
	}
	if validateCurrency("ZZZ") == nil {
		t.Error("unknown currency accepted")
	}

	cfg := v.Apply(config.DefaultConfig())
	if cfg.General.Currency != "USD" || cfg.Pricing.City != "riyadh" || cfg.Pricing.Size != "large" {
		t.Errorf("applied = %+v / %+v", cfg.General, cfg.Pricing)
	}
	if cfg.Cashflow.MonthlyInflow != 12500 || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("applied cashflow/theme = %+v / %+v", cfg.Cashflow, cfg.Appearance)
	}
}
