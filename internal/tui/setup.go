package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/Rhymond/go-money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues are the answers collected by the setup form.
type SetupValues struct {
	Currency string
	City     string
	Size     string
	Inflow   string
	Theme    string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	inflow := ""
	if cfg.Cashflow.MonthlyInflow > 0 {
		inflow = strconv.FormatFloat(cfg.Cashflow.MonthlyInflow, 'f', -1, 64)
	}
	return SetupValues{
		Currency: cfg.General.Currency,
		City:     string(config.NormalizeCity(cfg.Pricing.City)),
		Size:     string(config.NormalizeSize(cfg.Pricing.Size)),
		Inflow:   inflow,
		Theme:    cfg.Appearance.Theme,
	}
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	cfg.General.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
	cfg.Pricing.City = string(config.NormalizeCity(v.City))
	cfg.Pricing.Size = string(config.NormalizeSize(v.Size))
	if f, err := parseAmount(v.Inflow); err == nil {
		cfg.Cashflow.MonthlyInflow = f
	}
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	return cfg
}

// NewSetupForm builds the huh form editing v in place.
func NewSetupForm(v *SetupValues) *huh.Form {
	cities := []string{
		string(config.CityRiyadh), string(config.CityJeddah), string(config.CityDammam),
		string(config.CityQassim), string(config.CityOther),
	}
	sizes := []string{string(config.SizeSmall), string(config.SizeMedium), string(config.SizeLarge)}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Currency").
				Description("ISO 4217 code used for display, e.g. SAR").
				Value(&v.Currency).
				Validate(validateCurrency),
			huh.NewInput().
				Title("Expected monthly inflow").
				Description("Used by the cash gap walk; leave blank for none").
				Value(&v.Inflow).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("City").
				Description("Regional factor for price suggestions").
				Options(huh.NewOptions(cities...)...).
				Value(&v.City),
			huh.NewSelect[string]().
				Title("Office size").
				Options(huh.NewOptions(sizes...)...).
				Value(&v.Size),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	)
}

func validateCurrency(s string) error {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return errors.New("currency is required")
	}
	if money.GetCurrency(code) == nil {
		return errors.New("unknown currency code")
	}
	return nil
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, errors.New("enter a non-negative number")
	}
	return f, nil
}

// updateSetupForm forwards messages to the first-run form and saves the
// config once it completes.
func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, _ := config.Load()
		cfg = a.setupVals.Apply(cfg)
		if err := config.Save(cfg); err != nil {
			a.notice = "could not save config: " + err.Error()
		}
		theme.SetActive(cfg.Appearance.Theme)
		a.currency = cfg.General.Currency
		a.assumptions = cfg.Assumptions()
		a.setupForm = nil
		a.needSetup = false
		a.recompute()
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
	}
	return a, cmd
}
