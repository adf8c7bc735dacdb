package pipeline

import (
	"fmt"
	"sort"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// varianceEpsilon absorbs float noise when deciding over/under.
const varianceEpsilon = 0.01

// ActualsByMonth groups the ledger's transactions by "YYYY-MM", summing
// income and expense separately. Undated, zero, and undirected
// transactions are skipped. Results are ordered by month.
func ActualsByMonth(ledgerID string, ds Dataset) []model.MonthFigures {
	byKey := make(map[string]*model.MonthFigures)
	for _, tx := range ds.TransactionsFor(ledgerID) {
		if tx.Date.IsZero() || tx.Amount == 0 {
			continue
		}
		dir := tx.Direction()
		if dir == model.TxUnset {
			continue
		}
		key := model.MonthKey(tx.Date)
		mf, ok := byKey[key]
		if !ok {
			mf = &model.MonthFigures{Key: key, ExpenseByCategory: make(map[model.Category]float64)}
			byKey[key] = mf
		}
		amt := tx.Magnitude()
		if dir == model.TxIncome {
			mf.Income += amt
		} else {
			mf.Expense += amt
			mf.ExpenseByCategory[model.ParseCategory(tx.Category)] += amt
		}
	}

	out := make([]model.MonthFigures, 0, len(byKey))
	for _, mf := range byKey {
		mf.Net = mf.Income - mf.Expense
		out = append(out, *mf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ExpectedByMonth pairs each forecast month's outflow with the income
// model's expectation for that month.
func ExpectedByMonth(months []model.ForecastMonth, income IncomeModel) []model.MonthFigures {
	if income == nil {
		income = zeroIncome{}
	}
	out := make([]model.MonthFigures, 0, len(months))
	for _, m := range months {
		cats := make(map[model.Category]float64, len(m.ByCategory))
		for k, v := range m.ByCategory {
			cats[k] = v
		}
		inc := income.ExpectedIncome(m.Key)
		out = append(out, model.MonthFigures{
			Key:               m.Key,
			Income:            inc,
			Expense:           m.Total,
			Net:               inc - m.Total,
			ExpenseByCategory: cats,
		})
	}
	return out
}

// Variance compares actual and expected figures for every month present in
// either set. A month missing on one side counts as zero there.
func Variance(actual, expected []model.MonthFigures) []model.MonthVariance {
	act := indexFigures(actual)
	exp := indexFigures(expected)

	keys := make([]string, 0, len(act)+len(exp))
	for k := range act {
		keys = append(keys, k)
	}
	for k := range exp {
		if _, ok := act[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]model.MonthVariance, 0, len(keys))
	for _, k := range keys {
		a, e := act[k], exp[k]
		a.Key, e.Key = k, k
		v := model.MonthVariance{
			Key:           k,
			Actual:        a,
			Expected:      e,
			IncomeDelta:   a.Income - e.Income,
			ExpenseDelta:  a.Expense - e.Expense,
			NetDelta:      a.Net - e.Net,
			CategoryDelta: make(map[model.Category]float64),
		}
		for _, c := range model.Categories {
			if d := a.ExpenseByCategory[c] - e.ExpenseByCategory[c]; d != 0 {
				v.CategoryDelta[c] = d
			}
		}
		v.Reasons = varianceReasons(v)
		out = append(out, v)
	}
	return out
}

func varianceReasons(v model.MonthVariance) []string {
	var reasons []string
	if v.ExpenseDelta > varianceEpsilon {
		var worst model.Category
		var worstD float64
		for _, c := range model.Categories {
			if d := v.CategoryDelta[c]; d > varianceEpsilon && d > worstD {
				worst, worstD = c, d
			}
		}
		if worst != "" {
			reasons = append(reasons, fmt.Sprintf("expense overrun, led by %s (+%.2f)", worst, worstD))
		} else {
			reasons = append(reasons, "expense overrun")
		}
	}
	if v.IncomeDelta < -varianceEpsilon {
		reasons = append(reasons, "income shortfall")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "near expectation")
	}
	return reasons
}

func indexFigures(figs []model.MonthFigures) map[string]model.MonthFigures {
	m := make(map[string]model.MonthFigures, len(figs))
	for _, f := range figs {
		m[f.Key] = f
	}
	return m
}
