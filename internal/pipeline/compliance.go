package pipeline

import (
	"sort"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

const (
	complianceBase        = 100
	penaltySystemUnpriced = 20
	penaltySystemOverdue  = 25
	penaltyHighUnpriced   = 15
	bonusNoSystemOverdue  = 10
	maxDrivers            = 3
)

// ComplianceShield scores the ledger's system obligations and attributes
// the deductions to the three heaviest drivers.
func ComplianceShield(ledgerID string, ds Dataset, now time.Time) model.Compliance {
	today := model.StartOfDay(now)
	score := complianceBase
	var c model.Compliance
	var drivers []model.ComplianceDriver

	deduct := func(it model.RecurringItem, weight int, reason string) {
		score -= weight
		drivers = append(drivers, model.ComplianceDriver{
			ItemID: it.ID,
			Title:  it.Title,
			Reason: reason,
			Weight: weight,
		})
	}

	for _, it := range ds.ItemsFor(ledgerID) {
		system := it.Category == model.CategorySystem
		if system && !it.IsPriced() {
			deduct(it, penaltySystemUnpriced, "system obligation has no price")
		}
		if system && it.IsOverdue(today) {
			deduct(it, penaltySystemOverdue, "system obligation is overdue")
			c.SystemOverdue = true
		}
		if it.RiskLevel == model.RiskHigh && !it.IsPriced() {
			deduct(it, penaltyHighUnpriced, "high-risk obligation has no price")
		}
	}
	if !c.SystemOverdue {
		score += bonusNoSystemOverdue
	}

	c.Score = clampScore(float64(score))
	switch {
	case c.Score >= 85:
		c.Status = model.Compliant
	case c.Score >= 60:
		c.Status = model.NeedsAttention
	default:
		c.Status = model.SystemicRisk
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Weight > drivers[j].Weight
	})
	if len(drivers) > maxDrivers {
		drivers = drivers[:maxDrivers]
	}
	c.Drivers = drivers
	return c
}
