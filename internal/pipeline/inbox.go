package pipeline

import (
	"sort"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type inboxRule struct {
	reason   model.InboxReason
	priority int
	match    func(it model.RecurringItem, overdue bool, dueIn int, hasDue bool) bool
}

// inboxRules are evaluated in order; the first match wins.
var inboxRules = []inboxRule{
	{model.ReasonOverdueHighRisk, 100, func(it model.RecurringItem, overdue bool, _ int, _ bool) bool {
		return overdue && it.RiskLevel == model.RiskHigh
	}},
	{model.ReasonOverdue, 90, func(_ model.RecurringItem, overdue bool, _ int, _ bool) bool {
		return overdue
	}},
	{model.ReasonRequiredHighRiskUnpriced, 85, func(it model.RecurringItem, _ bool, _ int, _ bool) bool {
		return it.Required && it.RiskLevel == model.RiskHigh && !it.IsPriced()
	}},
	{model.ReasonRequiredUnpriced, 75, func(it model.RecurringItem, _ bool, _ int, _ bool) bool {
		return it.Required && !it.IsPriced()
	}},
	{model.ReasonDue7, 70, func(_ model.RecurringItem, _ bool, dueIn int, hasDue bool) bool {
		return hasDue && dueIn >= 0 && dueIn <= 7
	}},
	{model.ReasonDue14, 60, func(_ model.RecurringItem, _ bool, dueIn int, hasDue bool) bool {
		return hasDue && dueIn > 7 && dueIn <= 14
	}},
}

// DailyInbox lists the ledger's obligations that need attention today,
// ordered by priority, then due date (undated first), then title.
func DailyInbox(ledgerID string, ds Dataset, now time.Time) []model.InboxEntry {
	today := model.StartOfDay(now)
	var entries []model.InboxEntry

	for _, it := range ds.ItemsFor(ledgerID) {
		dueIn, hasDue := it.DaysUntilDue(today)
		overdue := hasDue && dueIn < 0

		if it.Status == model.StatusResolved && !overdue {
			continue
		}
		if it.IsSnoozed(today) && !overdue {
			continue
		}

		for _, rule := range inboxRules {
			if !rule.match(it, overdue, dueIn, hasDue) {
				continue
			}
			entries = append(entries, model.InboxEntry{
				Item:     it,
				Reason:   rule.reason,
				Priority: rule.priority,
				DueIn:    dueIn,
				HasDue:   hasDue,
			})
			break
		}
	}

	col := collate.New(language.Arabic)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.HasDue != b.HasDue {
			return !a.HasDue
		}
		if a.HasDue && !a.Item.NextDueDate.Equal(b.Item.NextDueDate) {
			return a.Item.NextDueDate.Before(b.Item.NextDueDate)
		}
		return col.CompareString(a.Item.Title, b.Item.Title) < 0
	})
	return entries
}
