package model

import (
	"math"
	"strings"
	"time"
)

// PriceBand is an optional uncertainty range for an obligation's amount.
type PriceBand struct {
	Min float64
	Max float64
}

// SeedMeta carries template metadata attached to system-provided obligations.
type SeedMeta struct {
	Seeded             bool
	SAHint             string
	CityFactorEligible *bool
	DefaultFreq        string
}

// CityEligible reports whether the regional city factor applies.
func (s SeedMeta) CityEligible() bool {
	return s.CityFactorEligible != nil && *s.CityFactorEligible
}

// RecurringItem is an obligation tracked against one ledger.
type RecurringItem struct {
	ID          string
	LedgerID    string
	Title       string
	Category    Category
	Frequency   Frequency
	RiskLevel   RiskLevel
	Amount      float64
	PriceBand   *PriceBand
	NextDueDate time.Time
	Status      Status
	SnoozeUntil time.Time
	LastPaidAt  time.Time
	Required    bool
	Seed        SeedMeta
	Origin      Origin
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPriced reports whether the obligation has a positive amount.
func (r RecurringItem) IsPriced() bool {
	return r.Amount > 0
}

// HasDueDate reports whether a next due date is set.
func (r RecurringItem) HasDueDate() bool {
	return !r.NextDueDate.IsZero()
}

// DaysUntilDue returns calendar days from today to the due date.
// The second result is false when no due date is set.
func (r RecurringItem) DaysUntilDue(today time.Time) (int, bool) {
	if !r.HasDueDate() {
		return 0, false
	}
	return DaysBetween(today, r.NextDueDate), true
}

// IsOverdue reports whether the due date is strictly before today.
// A due date equal to today is due, not overdue.
func (r RecurringItem) IsOverdue(today time.Time) bool {
	d, ok := r.DaysUntilDue(today)
	return ok && d < 0
}

// IsSnoozed reports whether an active snooze hides the item on today.
func (r RecurringItem) IsSnoozed(today time.Time) bool {
	return r.Status == StatusSnoozed && !r.SnoozeUntil.IsZero() && DaysBetween(today, r.SnoozeUntil) > 0
}

// ClassifyOrigin tags an obligation as seeded when the explicit flag is set
// or any template-only field is present.
func ClassifyOrigin(seed SeedMeta, band *PriceBand) Origin {
	if seed.Seeded ||
		strings.TrimSpace(seed.SAHint) != "" ||
		band != nil ||
		seed.CityFactorEligible != nil ||
		strings.TrimSpace(seed.DefaultFreq) != "" {
		return OriginSeeded
	}
	return OriginUser
}

// ItemDraft holds the caller-supplied fields for a new obligation.
type ItemDraft struct {
	Title       string
	Category    string
	Frequency   string
	RiskLevel   string
	Amount      float64
	PriceBand   *PriceBand
	NextDueDate string
	Status      string
	SnoozeUntil string
	Required    bool
	Seed        SeedMeta
}

// NewRecurringItem builds a normalized obligation owned by ledgerID.
// CreatedAt and UpdatedAt are both set to now.
func NewRecurringItem(ledgerID string, d ItemDraft, now time.Time, ids IDGenerator) RecurringItem {
	due, _ := ParseDate(d.NextDueDate)
	snooze, _ := ParseDate(d.SnoozeUntil)
	item := RecurringItem{
		ID:          ids.NewID(),
		LedgerID:    ledgerID,
		Title:       strings.TrimSpace(d.Title),
		Category:    ParseCategory(d.Category),
		Frequency:   ParseFrequency(d.Frequency),
		RiskLevel:   ParseRiskLevel(d.RiskLevel),
		Amount:      SanitizeAmount(d.Amount),
		PriceBand:   copyBand(d.PriceBand),
		NextDueDate: due,
		Status:      ParseStatus(d.Status),
		SnoozeUntil: snooze,
		Required:    d.Required,
		Seed:        d.Seed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.Origin = ClassifyOrigin(item.Seed, item.PriceBand)
	return item
}

// ItemPatch lists optional field updates. Nil fields are left untouched.
// Identity and ledger ownership cannot be patched.
type ItemPatch struct {
	Title       *string
	Category    *string
	Frequency   *string
	RiskLevel   *string
	Amount      *float64
	NextDueDate *string
	Status      *string
	SnoozeUntil *string
	Required    *bool
}

// Apply returns a copy of r with the patch applied and UpdatedAt set to now.
func (r RecurringItem) Apply(p ItemPatch, now time.Time) RecurringItem {
	out := r
	out.PriceBand = copyBand(r.PriceBand)
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		out.Category = ParseCategory(*p.Category)
	}
	if p.Frequency != nil {
		out.Frequency = ParseFrequency(*p.Frequency)
	}
	if p.RiskLevel != nil {
		out.RiskLevel = ParseRiskLevel(*p.RiskLevel)
	}
	if p.Amount != nil {
		out.Amount = SanitizeAmount(*p.Amount)
	}
	if p.NextDueDate != nil {
		out.NextDueDate, _ = ParseDate(*p.NextDueDate)
	}
	if p.Status != nil {
		out.Status = ParseStatus(*p.Status)
	}
	if p.SnoozeUntil != nil {
		out.SnoozeUntil, _ = ParseDate(*p.SnoozeUntil)
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	out.UpdatedAt = now
	return out
}

// MarkPaid records a payment on now. Periodic obligations roll their due
// date forward one period; adhoc obligations are resolved.
func (r RecurringItem) MarkPaid(now time.Time) RecurringItem {
	out := r
	out.PriceBand = copyBand(r.PriceBand)
	out.LastPaidAt = now
	if r.Frequency.OccurrencesPerYear() == 0 {
		out.Status = StatusResolved
	} else {
		out.NextDueDate = r.Frequency.Advance(r.NextDueDate)
		out.Status = StatusOpen
		out.SnoozeUntil = time.Time{}
	}
	out.UpdatedAt = now
	return out
}

// ValidateRecurringItem reports whether the obligation is complete enough
// to persist.
func ValidateRecurringItem(r RecurringItem) bool {
	if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.LedgerID) == "" {
		return false
	}
	if strings.TrimSpace(r.Title) == "" {
		return false
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount < 0 {
		return false
	}
	return r.Frequency.Valid()
}

// SanitizeAmount coerces negative or non-finite amounts to 0.
func SanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func copyBand(b *PriceBand) *PriceBand {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
