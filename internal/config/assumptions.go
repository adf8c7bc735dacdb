package config

import "github.com/badroneai/finance-flow-sub001/internal/pipeline"

// ScenarioPercents converts the configured scenario into engine form.
func (c Config) ScenarioPercents() pipeline.Scenario {
	s := c.Scenario
	return pipeline.Scenario{
		RentPct:        s.RentPct,
		UtilitiesPct:   s.UtilitiesPct,
		MaintenancePct: s.MaintenancePct,
		MarketingPct:   s.MarketingPct,
		SystemPct:      s.SystemPct,
		OtherPct:       s.OtherPct,
	}
}

// IncomeModel builds the configured expected-income strategy.
func (c Config) IncomeModel() pipeline.IncomeModel {
	in := c.Income
	return pipeline.NewIncomeModel(pipeline.IncomeConfig{
		Mode:       in.Mode,
		Fixed:      in.Fixed,
		Base:       in.Base,
		Peak:       in.Peak,
		PeakMonths: in.PeakMonths,
		Manual:     in.Manual,
	})
}

// Assumptions returns the planning inputs for pipeline.Analyze. Budgets
// are per ledger and left for the caller.
func (c Config) Assumptions() pipeline.AnalysisOptions {
	return pipeline.AnalysisOptions{
		Factors: pipeline.ScenarioFactors(c.ScenarioPercents()),
		Inflow:  c.Cashflow.MonthlyInflow,
		Income:  c.IncomeModel(),
	}
}
