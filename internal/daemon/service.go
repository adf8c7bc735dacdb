// Package daemon provides the long-running background ledger monitor.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
	"github.com/badroneai/finance-flow-sub001/internal/store"

	"golang.org/x/sync/errgroup"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8797"

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	LedgerID     string // empty monitors every ledger
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Assumptions  pipeline.AnalysisOptions
	Clock        model.Clock
	Logger       *slog.Logger
}

// Loader supplies the records for one poll.
type Loader interface {
	Load(ctx context.Context) ([]model.Ledger, pipeline.Dataset, error)
}

// StoreLoader reads ledgers and records from the SQLite store.
type StoreLoader struct {
	DBPath string
}

// Load opens the store for the duration of one poll.
func (l StoreLoader) Load(ctx context.Context) ([]model.Ledger, pipeline.Dataset, error) {
	st, err := store.Open(l.DBPath)
	if err != nil {
		return nil, pipeline.Dataset{}, err
	}
	defer func() { _ = st.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, pipeline.Dataset{}, err
	}
	ledgers, err := st.ListLedgers()
	if err != nil {
		return nil, pipeline.Dataset{}, err
	}
	items, err := st.ListItems("")
	if err != nil {
		return nil, pipeline.Dataset{}, err
	}
	txs, err := st.ListTransactions("")
	if err != nil {
		return nil, pipeline.Dataset{}, err
	}
	return ledgers, pipeline.Dataset{Items: items, Transactions: txs}, nil
}

// LedgerSnapshot is the compact state of one ledger.
type LedgerSnapshot struct {
	LedgerID         string                 `json:"ledger_id"`
	Name             string                 `json:"name"`
	PressureScore    int                    `json:"pressure_score"`
	PressureBand     model.PressureBand     `json:"pressure_band"`
	ComplianceScore  int                    `json:"compliance_score"`
	ComplianceStatus model.ComplianceStatus `json:"compliance_status"`
	InboxSize        int                    `json:"inbox_size"`
	MonthlyBurn      float64                `json:"monthly_burn"`
	OverdueTotal     float64                `json:"overdue_total"`
}

// Snapshot is the state of every monitored ledger at one poll.
type Snapshot struct {
	At      time.Time        `json:"at"`
	Ledgers []LedgerSnapshot `json:"ledgers"`
}

// Delta captures one ledger's changes between polls.
type Delta struct {
	LedgerID        string  `json:"ledger_id"`
	Added           bool    `json:"added,omitempty"`
	Removed         bool    `json:"removed,omitempty"`
	PressureScore   int     `json:"pressure_score"`
	ComplianceScore int     `json:"compliance_score"`
	InboxSize       int     `json:"inbox_size"`
	MonthlyBurn     float64 `json:"monthly_burn"`
	OverdueTotal    float64 `json:"overdue_total"`
}

func (d Delta) isZero() bool {
	return !d.Added && !d.Removed &&
		d.PressureScore == 0 &&
		d.ComplianceScore == 0 &&
		d.InboxSize == 0 &&
		d.MonthlyBurn == 0 &&
		d.OverdueTotal == 0
}

// Event is emitted whenever a ledger snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Deltas    []Delta   `json:"deltas,omitempty"`
}

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventLedgerDelta = "ledger_delta"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	LedgerFilter    string    `json:"ledger_filter,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	loader Loader
	log    *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service polling the configured store.
func New(cfg Config) *Service {
	return NewWithLoader(cfg, StoreLoader{DBPath: cfg.DBPath})
}

// NewWithLoader returns a daemon service polling loader.
func NewWithLoader(cfg Config, loader Loader) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Clock == nil {
		cfg.Clock = model.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		loader:    loader,
		log:       logger.With("component", "daemon"),
		startedAt: cfg.Clock.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval)

	// Seed so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.cfg.Clock.Now()
	snap, err := s.buildSnapshot(ctx, now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("poll failed", "err", err)
		return
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Snapshot: snap}
		publish = true
	} else if deltas := diffSnapshots(prev, snap); len(deltas) > 0 {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventLedgerDelta, Timestamp: now, Snapshot: snap, Deltas: deltas}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("publishing event", "type", ev.Type, "id", ev.ID, "ledgers", len(snap.Ledgers))
		s.publishEvent(ev)
	}
}

// buildSnapshot analyzes each monitored ledger concurrently.
func (s *Service) buildSnapshot(ctx context.Context, now time.Time) (Snapshot, error) {
	ledgers, ds, err := s.loader.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading ledgers: %w", err)
	}

	var monitored []model.Ledger
	for _, l := range ledgers {
		if s.cfg.LedgerID == "" || l.ID == s.cfg.LedgerID {
			monitored = append(monitored, l)
		}
	}

	out := make([]LedgerSnapshot, len(monitored))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range monitored {
		i, l := i, l
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts := s.cfg.Assumptions
			opts.Budgets = l.Budgets
			out[i] = summarize(l, pipeline.Analyze(l.ID, ds, now, opts))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LedgerID < out[j].LedgerID })
	return Snapshot{At: now, Ledgers: out}, nil
}

func summarize(l model.Ledger, a pipeline.Analysis) LedgerSnapshot {
	return LedgerSnapshot{
		LedgerID:         l.ID,
		Name:             l.Name,
		PressureScore:    a.Radar.Pressure.Score,
		PressureBand:     a.Radar.Pressure.Band,
		ComplianceScore:  a.Compliance.Score,
		ComplianceStatus: a.Compliance.Status,
		InboxSize:        len(a.Inbox),
		MonthlyBurn:      a.Radar.Burn.MonthlyTotal,
		OverdueTotal:     a.Plan.OverdueTotal,
	}
}

// diffSnapshots returns the non-zero per-ledger changes, ordered by ledger id.
func diffSnapshots(prev, curr Snapshot) []Delta {
	before := make(map[string]LedgerSnapshot, len(prev.Ledgers))
	for _, l := range prev.Ledgers {
		before[l.LedgerID] = l
	}

	var deltas []Delta
	for _, c := range curr.Ledgers {
		p, ok := before[c.LedgerID]
		delete(before, c.LedgerID)
		d := Delta{
			LedgerID:        c.LedgerID,
			Added:           !ok,
			PressureScore:   c.PressureScore - p.PressureScore,
			ComplianceScore: c.ComplianceScore - p.ComplianceScore,
			InboxSize:       c.InboxSize - p.InboxSize,
			MonthlyBurn:     c.MonthlyBurn - p.MonthlyBurn,
			OverdueTotal:    c.OverdueTotal - p.OverdueTotal,
		}
		if !d.isZero() {
			deltas = append(deltas, d)
		}
	}
	for id := range before {
		deltas = append(deltas, Delta{LedgerID: id, Removed: true})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].LedgerID < deltas[j].LedgerID })
	return deltas
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		LedgerFilter:    s.cfg.LedgerID,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Clock.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
