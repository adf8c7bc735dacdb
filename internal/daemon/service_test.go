package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
)

var pollTime = time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local)

type fakeLoader struct {
	ledgers []model.Ledger
	ds      pipeline.Dataset
	err     error
}

func (f *fakeLoader) Load(context.Context) ([]model.Ledger, pipeline.Dataset, error) {
	return f.ledgers, f.ds, f.err
}

func newTestService(t *testing.T, loader Loader) *Service {
	t.Helper()
	return NewWithLoader(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 10,
		Clock:        model.FixedClock(pollTime),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, loader)
}

func rent(ledgerID string, amount float64) model.RecurringItem {
	return model.RecurringItem{
		ID:          ledgerID + "-rent",
		LedgerID:    ledgerID,
		Title:       "Rent",
		Category:    model.CategoryOperational,
		Frequency:   model.Monthly,
		Amount:      amount,
		NextDueDate: model.Day(2025, 3, 12),
		Status:      model.StatusOpen,
	}
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Ledgers: []LedgerSnapshot{
		{LedgerID: "a", PressureScore: 10, InboxSize: 2, MonthlyBurn: 1000},
		{LedgerID: "b", PressureScore: 40},
		{LedgerID: "gone"},
	}}
	curr := Snapshot{Ledgers: []LedgerSnapshot{
		{LedgerID: "a", PressureScore: 25, InboxSize: 3, MonthlyBurn: 1200},
		{LedgerID: "b", PressureScore: 40},
		{LedgerID: "new", ComplianceScore: 90},
	}}

	deltas := diffSnapshots(prev, curr)
	if len(deltas) != 3 {
		t.Fatalf("deltas = %+v, want 3 entries", deltas)
	}
	if deltas[0].LedgerID != "a" || deltas[0].PressureScore != 15 || deltas[0].InboxSize != 1 || deltas[0].MonthlyBurn != 200 {
		t.Errorf("delta a = %+v", deltas[0])
	}
	if deltas[1].LedgerID != "gone" || !deltas[1].Removed {
		t.Errorf("delta gone = %+v", deltas[1])
	}
	if deltas[2].LedgerID != "new" || !deltas[2].Added || deltas[2].ComplianceScore != 90 {
		t.Errorf("delta new = %+v", deltas[2])
	}
	for _, d := range deltas {
		if d.isZero() {
			t.Errorf("zero delta reported for %q", d.LedgerID)
		}
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := NewWithLoader(Config{Interval: 10 * time.Second, EventsBuffer: 2}, &fakeLoader{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnce_SnapshotThenDelta(t *testing.T) {
	loader := &fakeLoader{
		ledgers: []model.Ledger{{ID: "L1", Name: "Office"}, {ID: "L2"}},
		ds:      pipeline.Dataset{Items: []model.RecurringItem{rent("L1", 1000), rent("L2", 500)}},
	}
	s := newTestService(t, loader)

	s.pollOnce(context.Background())
	s.pollOnce(context.Background())
	if got := len(s.events); got != 1 {
		t.Fatalf("unchanged poll published %d events, want 1", got)
	}
	if s.events[0].Type != EventSnapshot || len(s.events[0].Snapshot.Ledgers) != 2 {
		t.Fatalf("first event = %+v", s.events[0])
	}
	if s.snapshot.Ledgers[0].MonthlyBurn != 1000 {
		t.Errorf("L1 burn = %.0f, want 1000", s.snapshot.Ledgers[0].MonthlyBurn)
	}

	loader.ds.Items[0].Amount = 1500
	s.pollOnce(context.Background())
	if len(s.events) != 2 {
		t.Fatalf("events = %d, want 2", len(s.events))
	}
	ev := s.events[1]
	if ev.Type != EventLedgerDelta || len(ev.Deltas) != 1 || ev.Deltas[0].LedgerID != "L1" {
		t.Fatalf("delta event = %+v", ev)
	}
	if ev.Deltas[0].MonthlyBurn != 500 {
		t.Errorf("burn delta = %.0f, want 500", ev.Deltas[0].MonthlyBurn)
	}
}

func TestPollOnce_LedgerFilterAndErrors(t *testing.T) {
	loader := &fakeLoader{
		ledgers: []model.Ledger{{ID: "L1"}, {ID: "L2"}},
		ds:      pipeline.Dataset{Items: []model.RecurringItem{rent("L1", 1000), rent("L2", 500)}},
	}
	s := newTestService(t, loader)
	s.cfg.LedgerID = "L2"

	s.pollOnce(context.Background())
	if len(s.snapshot.Ledgers) != 1 || s.snapshot.Ledgers[0].LedgerID != "L2" {
		t.Fatalf("filtered snapshot = %+v", s.snapshot)
	}

	loader.err = errors.New("disk gone")
	s.pollOnce(context.Background())
	st := s.snapshotStatus()
	if st.LastError == "" || st.PollCount != 2 {
		t.Errorf("status after failure = %+v", st)
	}
	if len(st.Summary.Ledgers) != 1 {
		t.Error("failed poll should keep the last good snapshot")
	}
}

func TestHandlers(t *testing.T) {
	loader := &fakeLoader{
		ledgers: []model.Ledger{{ID: "L1"}},
		ds:      pipeline.Dataset{Items: []model.RecurringItem{rent("L1", 1000)}},
	}
	s := newTestService(t, loader)
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	_ = resp.Body.Close()
	if st.PollCount != 1 || len(st.Summary.Ledgers) != 1 || st.Summary.Ledgers[0].MonthlyBurn != 1000 {
		t.Errorf("status = %+v", st)
	}

	resp, err = http.Get(srv.URL + "/v1/events")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	_ = resp.Body.Close()
	if len(events) != 1 || events[0].Type != EventSnapshot {
		t.Errorf("events = %+v", events)
	}
}
