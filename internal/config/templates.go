package config

import (
	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// Template is a system-provided obligation a new ledger can be seeded with.
// Templates start unpriced; Typical is the base for price suggestions.
type Template struct {
	Title        string
	Category     model.Category
	Frequency    model.Frequency
	RiskLevel    model.RiskLevel
	Required     bool
	Hint         string
	Typical      float64
	Band         model.PriceBand
	CityEligible bool
}

// DefaultTemplates are the obligations most small property offices carry.
var DefaultTemplates = []Template{
	{
		Title: "Municipal license renewal", Category: model.CategorySystem,
		Frequency: model.Yearly, RiskLevel: model.RiskHigh, Required: true,
		Hint: "license", Typical: 2500, Band: model.PriceBand{Min: 1500, Max: 4000}, CityEligible: true,
	},
	{
		Title: "Civil defense certificate", Category: model.CategorySystem,
		Frequency: model.Yearly, RiskLevel: model.RiskHigh, Required: true,
		Hint: "permit", Typical: 1200, Band: model.PriceBand{Min: 800, Max: 2000}, CityEligible: true,
	},
	{
		Title: "Chamber of commerce membership", Category: model.CategorySystem,
		Frequency: model.Yearly, RiskLevel: model.RiskMedium, Required: true,
		Hint: "registration", Typical: 800, Band: model.PriceBand{Min: 500, Max: 1500},
	},
	{
		Title: "Office rent", Category: model.CategoryOperational,
		Frequency: model.Monthly, RiskLevel: model.RiskHigh, Required: true,
		Hint: "rent", Typical: 4000, Band: model.PriceBand{Min: 2500, Max: 8000}, CityEligible: true,
	},
	{
		Title: "Electricity", Category: model.CategoryOperational,
		Frequency: model.Monthly, RiskLevel: model.RiskMedium, Required: true,
		Hint: "electric", Typical: 600, Band: model.PriceBand{Min: 300, Max: 1200}, CityEligible: true,
	},
	{
		Title: "Water", Category: model.CategoryOperational,
		Frequency: model.Monthly, RiskLevel: model.RiskLow, Required: true,
		Hint: "water", Typical: 150, Band: model.PriceBand{Min: 80, Max: 300},
	},
	{
		Title: "Internet", Category: model.CategoryOperational,
		Frequency: model.Monthly, RiskLevel: model.RiskLow,
		Hint: "internet", Typical: 350, Band: model.PriceBand{Min: 250, Max: 500},
	},
	{
		Title: "Maintenance contract", Category: model.CategoryMaintenance,
		Frequency: model.Quarterly, RiskLevel: model.RiskMedium,
		Hint: "maintenance", Typical: 1800, Band: model.PriceBand{Min: 1000, Max: 3500}, CityEligible: true,
	},
	{
		Title: "Listing ads", Category: model.CategoryMarketing,
		Frequency: model.Monthly, RiskLevel: model.RiskLow,
		Hint: "ads", Typical: 500, Band: model.PriceBand{Min: 200, Max: 1500},
	},
}

// Draft turns a template into an obligation draft carrying seed metadata.
func (t Template) Draft(nextDue string) model.ItemDraft {
	eligible := t.CityEligible
	band := t.Band
	return model.ItemDraft{
		Title:       t.Title,
		Category:    string(t.Category),
		Frequency:   string(t.Frequency),
		RiskLevel:   string(t.RiskLevel),
		PriceBand:   &band,
		NextDueDate: nextDue,
		Required:    t.Required,
		Seed: model.SeedMeta{
			Seeded:             true,
			SAHint:             t.Hint,
			CityFactorEligible: &eligible,
			DefaultFreq:        string(t.Frequency),
		},
	}
}

// FindTemplate returns the template whose hint or title matches.
func FindTemplate(hintOrTitle string) (Template, bool) {
	for _, t := range DefaultTemplates {
		if t.Hint == hintOrTitle || t.Title == hintOrTitle {
			return t, true
		}
	}
	return Template{}, false
}
