package pipeline

import (
	"math"
	"strings"
	"unicode"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// ScenarioClass groups obligations for scenario stress testing.
type ScenarioClass string

// Scenario classes.
const (
	ClassRent        ScenarioClass = "rent"
	ClassUtilities   ScenarioClass = "utilities"
	ClassMaintenance ScenarioClass = "maintenance"
	ClassMarketing   ScenarioClass = "marketing"
	ClassSystem      ScenarioClass = "system"
	ClassOther       ScenarioClass = "other"
)

// Scenario is a set of percentage changes per class, e.g. 10 means +10%.
type Scenario struct {
	RentPct        float64
	UtilitiesPct   float64
	MaintenancePct float64
	MarketingPct   float64
	SystemPct      float64
	OtherPct       float64
}

// Factors are per-class multipliers. Missing classes default to 1.
type Factors map[ScenarioClass]float64

// For returns the multiplier for class.
func (f Factors) For(class ScenarioClass) float64 {
	if v, ok := f[class]; ok {
		return v
	}
	return 1
}

const (
	minFactor = 0.5
	maxFactor = 2.0
)

// ScenarioFactors converts percentages to multipliers clamped to [0.5, 2].
func ScenarioFactors(s Scenario) Factors {
	return Factors{
		ClassRent:        pctFactor(s.RentPct),
		ClassUtilities:   pctFactor(s.UtilitiesPct),
		ClassMaintenance: pctFactor(s.MaintenancePct),
		ClassMarketing:   pctFactor(s.MarketingPct),
		ClassSystem:      pctFactor(s.SystemPct),
		ClassOther:       pctFactor(s.OtherPct),
	}
}

func pctFactor(pct float64) float64 {
	switch {
	case math.IsNaN(pct):
		return 1
	case math.IsInf(pct, 1):
		return maxFactor
	case math.IsInf(pct, -1):
		return minFactor
	}
	return clamp(1+pct/100, minFactor, maxFactor)
}

var scenarioKeywords = []struct {
	class    ScenarioClass
	keywords []string
}{
	{ClassRent, []string{"rent", "lease", "إيجار", "ايجار"}},
	{ClassUtilities, []string{"electric", "water", "utility", "utilities", "internet", "كهرباء", "مياه", "انترنت"}},
	{ClassMaintenance, []string{"maint", "repair", "cleaning", "صيانة", "إصلاح", "نظافة"}},
	{ClassMarketing, []string{"marketing", "ads", "advert", "تسويق", "إعلان"}},
	{ClassSystem, []string{"license", "permit", "registration", "رخصة", "ترخيص", "تسجيل"}},
}

// ClassifyScenario picks the scenario class for an obligation by keyword
// on its seed hint, then its title, then by category.
func ClassifyScenario(it model.RecurringItem) ScenarioClass {
	for _, text := range []string{it.Seed.SAHint, it.Title} {
		if c, ok := matchKeywords(text); ok {
			return c
		}
	}
	switch it.Category {
	case model.CategorySystem:
		return ClassSystem
	case model.CategoryMaintenance:
		return ClassMaintenance
	case model.CategoryMarketing:
		return ClassMarketing
	default:
		return ClassOther
	}
}

// matchKeywords matches keywords against word prefixes, so "rent" hits
// "rental" but not "parent". A leading Arabic article is ignored.
func matchKeywords(text string) (ScenarioClass, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "", false
	}
	for _, group := range scenarioKeywords {
		for _, kw := range group.keywords {
			for _, w := range words {
				if strings.HasPrefix(w, kw) || strings.HasPrefix(strings.TrimPrefix(w, "ال"), kw) {
					return group.class, true
				}
			}
		}
	}
	return "", false
}
