package model

import "strings"

// Frequency is how often an obligation recurs.
type Frequency string

// Frequencies recognized by the engine.
const (
	Weekly     Frequency = "weekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Yearly     Frequency = "yearly"
	Adhoc      Frequency = "adhoc"
)

// Category is the obligation classification used by every aggregate.
type Category string

// Categories. Anything else folds into CategoryOther.
const (
	CategorySystem      Category = "system"
	CategoryOperational Category = "operational"
	CategoryMaintenance Category = "maintenance"
	CategoryMarketing   Category = "marketing"
	CategoryOther       Category = "other"
)

// Categories lists the fixed bucket taxonomy in display order.
var Categories = []Category{
	CategorySystem,
	CategoryOperational,
	CategoryMaintenance,
	CategoryMarketing,
	CategoryOther,
}

// RiskLevel marks how harmful a missed obligation would be.
type RiskLevel string

// Risk levels. RiskUnset is the zero value.
const (
	RiskUnset  RiskLevel = ""
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Status is the workflow state of an obligation.
type Status string

// Statuses.
const (
	StatusOpen     Status = "open"
	StatusSnoozed  Status = "snoozed"
	StatusResolved Status = "resolved"
)

// TxType is the direction of a transaction.
type TxType string

// Transaction types. TxUnset defers to the sign of the amount.
const (
	TxUnset   TxType = ""
	TxIncome  TxType = "income"
	TxExpense TxType = "expense"
)

// Origin tags whether an obligation came from a system template or a user.
type Origin string

// Origins.
const (
	OriginUser   Origin = "user"
	OriginSeeded Origin = "seeded"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseFrequency converts a raw value to a Frequency, defaulting to Monthly.
func ParseFrequency(s string) Frequency {
	switch f := Frequency(normalize(s)); f {
	case Weekly, Monthly, Quarterly, Semiannual, Yearly, Adhoc:
		return f
	default:
		return Monthly
	}
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Semiannual, Yearly, Adhoc:
		return true
	}
	return false
}

// ParseCategory converts a raw value to a Category, defaulting to Other.
func ParseCategory(s string) Category {
	switch c := Category(normalize(s)); c {
	case CategorySystem, CategoryOperational, CategoryMaintenance, CategoryMarketing, CategoryOther:
		return c
	default:
		return CategoryOther
	}
}

// ParseRiskLevel converts a raw value to a RiskLevel, defaulting to unset.
func ParseRiskLevel(s string) RiskLevel {
	switch r := RiskLevel(normalize(s)); r {
	case RiskLow, RiskMedium, RiskHigh:
		return r
	default:
		return RiskUnset
	}
}

// ParseStatus converts a raw value to a Status, defaulting to Open.
func ParseStatus(s string) Status {
	switch st := Status(normalize(s)); st {
	case StatusOpen, StatusSnoozed, StatusResolved:
		return st
	default:
		return StatusOpen
	}
}

// ParseTxType converts a raw value to a TxType, defaulting to unset.
func ParseTxType(s string) TxType {
	switch t := TxType(normalize(s)); t {
	case TxIncome, TxExpense:
		return t
	default:
		return TxUnset
	}
}
