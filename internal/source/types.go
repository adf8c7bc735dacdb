package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Record kinds accepted in import files.
const (
	KindLedger      = "ledger"
	KindItem        = "item"
	KindTransaction = "transaction"
)

// RawRecord is one line of an import file. Every field is optional and
// loosely typed because the files are hand-edited or exported from older
// versions.
type RawRecord struct {
	Kind     string     `json:"kind"`
	ID       FlexString `json:"id"`
	LedgerID FlexString `json:"ledgerId"`
	Owner    *RawOwner  `json:"owner,omitempty"`

	// Ledger fields
	Name    string      `json:"name"`
	Budgets *RawBudgets `json:"budgets,omitempty"`

	// Obligation fields
	Title              string        `json:"title"`
	Category           string        `json:"category"`
	Frequency          string        `json:"frequency"`
	RiskLevel          string        `json:"riskLevel"`
	Amount             FlexFloat     `json:"amount"`
	PriceBand          *RawPriceBand `json:"priceBand,omitempty"`
	NextDueDate        string        `json:"nextDueDate"`
	Status             string        `json:"status"`
	SnoozeUntil        string        `json:"snoozeUntil"`
	LastPaidAt         string        `json:"lastPaidAt"`
	Required           FlexBool      `json:"required"`
	Seeded             FlexBool      `json:"seeded"`
	SAHint             string        `json:"saHint"`
	CityFactorEligible *FlexBool     `json:"cityFactorEligible,omitempty"`
	DefaultFreq        string        `json:"defaultFreq"`
	CreatedAt          string        `json:"createdAt"`
	UpdatedAt          string        `json:"updatedAt"`

	// Transaction fields
	Date string `json:"date"`
	Type string `json:"type"`
	Note string `json:"note"`
}

// RawOwner is the nested ownership reference on transactions.
type RawOwner struct {
	LedgerID FlexString `json:"ledgerId"`
}

// RawBudgets holds ledger budget targets.
type RawBudgets struct {
	MonthlyTarget FlexFloat `json:"monthlyTarget"`
	YearlyTarget  FlexFloat `json:"yearlyTarget"`
}

// RawPriceBand holds an uncertainty range.
type RawPriceBand struct {
	Min FlexFloat `json:"min"`
	Max FlexFloat `json:"max"`
}

// FlexFloat decodes a number, a numeric string, or anything else as 0.
type FlexFloat float64

// UnmarshalJSON never fails; unusable values become 0.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == 'n' {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil //nolint:nilerr // coerce to zero
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexFloat(v)
		}
		return nil
	}
	if v, err := strconv.ParseFloat(string(b), 64); err == nil {
		*f = FlexFloat(v)
	}
	return nil
}

// FlexBool decodes true/false, "true"/"yes"/"1", or a non-zero number.
type FlexBool bool

// UnmarshalJSON never fails; unrecognized values become false.
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	*f = false
	s := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch s {
	case "true", "yes", "y", "1":
		*f = true
	default:
		if v, err := strconv.ParseFloat(s, 64); err == nil && v != 0 {
			*f = true
		}
	}
	return nil
}

// FlexString decodes a string or a bare number as text.
type FlexString string

// UnmarshalJSON never fails; objects, arrays, and null become "".
func (f *FlexString) UnmarshalJSON(b []byte) error {
	*f = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*f = FlexString(strings.TrimSpace(s))
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*f = FlexString(b)
	}
	return nil
}
