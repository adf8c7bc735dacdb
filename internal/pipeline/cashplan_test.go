package pipeline

import (
	"testing"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

func TestCashPlan_Windows(t *testing.T) {
	ds := Dataset{Items: []model.RecurringItem{
		obligation("a", 100, due(0), required),
		obligation("b", 200, due(5), highRisk),
		obligation("c", 300, due(20), category(model.CategoryMaintenance)),
		obligation("d", 400, due(40)),
		obligation("e", 50, due(-2)),
		obligation("f", 0, required, highRisk, func(it *model.RecurringItem) { it.Origin = model.OriginSeeded }),
		obligation("g", 70),
	}}
	plan := CashPlan(ledger, ds, testNow)

	if plan.Today.Total != 100 || plan.Today.Count != 1 || plan.Today.RequiredTotal != 100 {
		t.Errorf("Today = %+v", plan.Today)
	}
	if plan.Week.Total != 300 || plan.Week.HighRiskTotal != 200 {
		t.Errorf("Week = %+v", plan.Week)
	}
	if plan.Month.Total != 600 || plan.Month.ByCategory[model.CategoryMaintenance] != 300 {
		t.Errorf("Month = %+v", plan.Month)
	}
	for _, w := range []model.PlanWindow{plan.Today, plan.Week, plan.Month} {
		if w.SavingsIfSnoozed != w.Total {
			t.Errorf("window %d savings %.0f != total %.0f", w.Days, w.SavingsIfSnoozed, w.Total)
		}
	}
	if plan.OverdueTotal != 50 {
		t.Errorf("OverdueTotal = %.0f, want 50", plan.OverdueTotal)
	}

	want := model.PlanCounts{Priced: 6, Unpriced: 1, RequiredUnpriced: 1, HighRiskRequiredUnpriced: 1, SeededUnpriced: 1}
	if plan.Counts != want {
		t.Errorf("Counts = %+v, want %+v", plan.Counts, want)
	}
}

func TestCashPlan_Monotonic(t *testing.T) {
	var items []model.RecurringItem
	for i := -5; i < 45; i += 3 {
		items = append(items, obligation("x", float64(10+i), due(i)))
	}
	plan := CashPlan(ledger, Dataset{Items: items}, testNow)
	if !(plan.Month.Total >= plan.Week.Total && plan.Week.Total >= plan.Today.Total) {
		t.Errorf("windows not monotonic: %.0f / %.0f / %.0f", plan.Today.Total, plan.Week.Total, plan.Month.Total)
	}
}

func TestCashPlan_UnpricedNeverCounted(t *testing.T) {
	ds := Dataset{Items: []model.RecurringItem{obligation("z", 0, due(0))}}
	plan := CashPlan(ledger, ds, testNow)
	if plan.Today.Total != 0 || plan.Today.Count != 0 || plan.Counts.Unpriced != 1 {
		t.Errorf("unpriced leaked into plan: %+v", plan)
	}
}

func TestDailyInbox_RulesAndOrder(t *testing.T) {
	resolved := func(it *model.RecurringItem) { it.Status = model.StatusResolved }
	snoozedUntil := func(offset int) func(*model.RecurringItem) {
		return func(it *model.RecurringItem) {
			it.Status = model.StatusSnoozed
			it.SnoozeUntil = day(offset)
		}
	}

	ds := Dataset{Items: []model.RecurringItem{
		obligation("far", 10, due(20)),
		obligation("d2", 10, due(10)),
		obligation("d1", 10, due(3)),
		obligation("r2", 0, required, due(3)),
		obligation("r1", 0, required, highRisk),
		obligation("resolved-future", 10, due(2), resolved),
		obligation("resolved-overdue", 10, due(-1), resolved),
		obligation("snoozed-future", 10, due(1), snoozedUntil(3)),
		obligation("snoozed-overdue", 10, due(-2), snoozedUntil(3)),
		obligation("o2", 10, due(-5)),
		obligation("o1", 10, due(-1), highRisk),
	}}

	got := DailyInbox(ledger, ds, testNow)
	want := []struct {
		id     string
		reason model.InboxReason
		prio   int
	}{
		{"o1", model.ReasonOverdueHighRisk, 100},
		{"o2", model.ReasonOverdue, 90},
		{"snoozed-overdue", model.ReasonOverdue, 90},
		{"resolved-overdue", model.ReasonOverdue, 90},
		{"r1", model.ReasonRequiredHighRiskUnpriced, 85},
		{"r2", model.ReasonRequiredUnpriced, 75},
		{"d1", model.ReasonDue7, 70},
		{"d2", model.ReasonDue14, 60},
	}
	if len(got) != len(want) {
		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.Item.ID
		}
		t.Fatalf("inbox = %v, want %d entries", ids, len(want))
	}
	for i, w := range want {
		if got[i].Item.ID != w.id || got[i].Reason != w.reason || got[i].Priority != w.prio {
			t.Errorf("[%d] = %s/%s/%d, want %s/%s/%d", i,
				got[i].Item.ID, got[i].Reason, got[i].Priority, w.id, w.reason, w.prio)
		}
	}
}

func TestDailyInbox_TieBreaks(t *testing.T) {
	title := func(s string) func(*model.RecurringItem) {
		return func(it *model.RecurringItem) { it.Title = s }
	}
	ds := Dataset{Items: []model.RecurringItem{
		obligation("maint", 10, due(4), title("صيانة")),
		obligation("rent", 10, due(4), title("إيجار")),
		obligation("dated", 0, required, due(1)),
		obligation("undated", 0, required),
	}}
	got := DailyInbox(ledger, ds, testNow)
	order := []string{"undated", "dated", "rent", "maint"}
	if len(got) != len(order) {
		t.Fatalf("got %d entries, want %d", len(got), len(order))
	}
	for i, id := range order {
		if got[i].Item.ID != id {
			t.Errorf("[%d] = %s, want %s", i, got[i].Item.ID, id)
		}
	}
}

func TestDailyInbox_EmptyLedger(t *testing.T) {
	if got := DailyInbox(ledger, Dataset{}, testNow); len(got) != 0 {
		t.Errorf("empty ledger inbox = %d entries", len(got))
	}
}
