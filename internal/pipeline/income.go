package pipeline

import (
	"strconv"
	"strings"
)

// IncomeModel returns the expected income for a "YYYY-MM" month key.
type IncomeModel interface {
	ExpectedIncome(monthKey string) float64
}

// FixedIncome expects the same amount every month.
type FixedIncome struct {
	Monthly float64
}

// ExpectedIncome implements IncomeModel.
func (f FixedIncome) ExpectedIncome(string) float64 { return f.Monthly }

// SeasonalIncome expects Peak in the listed months (1-12) and Base otherwise.
type SeasonalIncome struct {
	Base       float64
	Peak       float64
	PeakMonths []int
}

// ExpectedIncome implements IncomeModel.
func (s SeasonalIncome) ExpectedIncome(monthKey string) float64 {
	m := monthOf(monthKey)
	for _, p := range s.PeakMonths {
		if p == m {
			return s.Peak
		}
	}
	return s.Base
}

// ManualIncome maps month keys to explicit values; unlisted months are 0.
type ManualIncome map[string]float64

// ExpectedIncome implements IncomeModel.
func (m ManualIncome) ExpectedIncome(monthKey string) float64 { return m[monthKey] }

type zeroIncome struct{}

func (zeroIncome) ExpectedIncome(string) float64 { return 0 }

// Income modes understood by NewIncomeModel.
const (
	IncomeFixed    = "fixed"
	IncomeSeasonal = "seasonal"
	IncomeManual   = "manual"
)

// IncomeConfig carries the parameters of every income mode.
type IncomeConfig struct {
	Mode       string
	Fixed      float64
	Base       float64
	Peak       float64
	PeakMonths []int
	Manual     map[string]float64
}

var incomeModels = map[string]func(IncomeConfig) IncomeModel{
	IncomeFixed: func(c IncomeConfig) IncomeModel {
		return FixedIncome{Monthly: c.Fixed}
	},
	IncomeSeasonal: func(c IncomeConfig) IncomeModel {
		return SeasonalIncome{Base: c.Base, Peak: c.Peak, PeakMonths: c.PeakMonths}
	},
	IncomeManual: func(c IncomeConfig) IncomeModel {
		m := make(ManualIncome, len(c.Manual))
		for k, v := range c.Manual {
			m[strings.TrimSpace(k)] = v
		}
		return m
	},
}

// NewIncomeModel builds the strategy named by cfg.Mode. Unknown modes
// expect no income.
func NewIncomeModel(cfg IncomeConfig) IncomeModel {
	if build, ok := incomeModels[strings.ToLower(strings.TrimSpace(cfg.Mode))]; ok {
		return build(cfg)
	}
	return zeroIncome{}
}

func monthOf(key string) int {
	if len(key) < 7 {
		return 0
	}
	m, err := strconv.Atoi(key[5:7])
	if err != nil {
		return 0
	}
	return m
}
