// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount in the given ISO currency, e.g.
// 1437.5 USD -> "$1,437.50". Unknown currency codes fall back to a plain
// grouped number followed by the code.
func FormatMoney(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		s := FormatAmount(amount)
		if code == "" {
			return s
		}
		return s + " " + code
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatAmount formats an amount with grouping and no decimals once it
// reaches the thousands, e.g. 12345.6 -> "12,346", 45.5 -> "45.50".
func FormatAmount(v float64) string {
	if math.Abs(v) >= 1000 {
		return FormatNumber(int64(math.Round(v)))
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatRatio formats a ratio pointer, "-" when undefined.
func FormatRatio(r *float64) string {
	if r == nil {
		return "-"
	}
	return FormatPercent(*r)
}

// FormatDelta formats a signed amount difference.
func FormatDelta(delta float64) string {
	if delta >= 0 {
		return "+" + FormatAmount(delta)
	}
	return "-" + FormatAmount(-delta)
}

// FormatDueIn describes a due offset in days relative to today.
// e.g., 0 -> "today", 3 -> "in 3d", -2 -> "2d overdue"
func FormatDueIn(days int, hasDue bool) string {
	switch {
	case !hasDue:
		return "no date"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}
