package model

import "time"

var occurrencesPerYear = map[Frequency]int{
	Weekly:     52,
	Monthly:    12,
	Quarterly:  4,
	Semiannual: 2,
	Yearly:     1,
	Adhoc:      0,
}

// OccurrencesPerYear returns how many times per year the frequency recurs.
// Adhoc and unknown frequencies return 0.
func (f Frequency) OccurrencesPerYear() int {
	return occurrencesPerYear[f]
}

// MonthlyEquivalent spreads a priced obligation across a month:
// amount * occurrencesPerYear / 12. Unpriced items and zero-multiplier
// frequencies contribute 0.
func MonthlyEquivalent(item RecurringItem) float64 {
	if !item.IsPriced() {
		return 0
	}
	n := item.Frequency.OccurrencesPerYear()
	if n == 0 {
		return 0
	}
	return item.Amount * float64(n) / 12
}

// Advance moves a due date forward by one period of f.
// Adhoc and unknown frequencies return the date unchanged.
func (f Frequency) Advance(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	switch f {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return addMonthsClamped(t, 1)
	case Quarterly:
		return addMonthsClamped(t, 3)
	case Semiannual:
		return addMonthsClamped(t, 6)
	case Yearly:
		return addMonthsClamped(t, 12)
	default:
		return t
	}
}

// addMonthsClamped adds months without overflowing short months:
// Jan 31 + 1 month is the last day of February, not March 3rd.
func addMonthsClamped(t time.Time, months int) time.Time {
	t = t.Local()
	first := Day(t.Year(), t.Month()+time.Month(months), 1)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return Day(first.Year(), first.Month(), day)
}
