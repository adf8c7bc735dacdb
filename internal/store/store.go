// Package store persists ledgers, obligations, and transactions in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDay(s string) time.Time {
	t, _ := model.ParseDate(s)
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveLedger inserts or replaces a ledger.
func (s *Store) SaveLedger(l model.Ledger) error {
	b := l.Budgets.Normalize()
	_, err := s.db.Exec(`INSERT INTO ledgers (ledger_id, name, monthly_target, yearly_target, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ledger_id) DO UPDATE SET
			name = excluded.name,
			monthly_target = excluded.monthly_target,
			yearly_target = excluded.yearly_target`,
		l.ID, l.Name, b.MonthlyTarget, b.YearlyTarget, formatTime(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving ledger %s: %w", l.ID, err)
	}
	return nil
}

// GetLedger returns one ledger by id.
func (s *Store) GetLedger(id string) (model.Ledger, error) {
	var l model.Ledger
	var created string
	err := s.db.QueryRow(`SELECT ledger_id, name, monthly_target, yearly_target, created_at
		FROM ledgers WHERE ledger_id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Budgets.MonthlyTarget, &l.Budgets.YearlyTarget, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return l, fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return l, err
	}
	l.CreatedAt = parseTime(created)
	return l, nil
}

// ListLedgers returns all ledgers ordered by name.
func (s *Store) ListLedgers() ([]model.Ledger, error) {
	rows, err := s.db.Query(`SELECT ledger_id, name, monthly_target, yearly_target, created_at
		FROM ledgers ORDER BY name, ledger_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ledgers []model.Ledger
	for rows.Next() {
		var l model.Ledger
		var created string
		if err := rows.Scan(&l.ID, &l.Name, &l.Budgets.MonthlyTarget, &l.Budgets.YearlyTarget, &created); err != nil {
			return nil, err
		}
		l.CreatedAt = parseTime(created)
		ledgers = append(ledgers, l)
	}
	return ledgers, rows.Err()
}

// SetBudgets updates a ledger's budget targets.
func (s *Store) SetBudgets(id string, b model.Budgets) error {
	b = b.Normalize()
	res, err := s.db.Exec(`UPDATE ledgers SET monthly_target = ?, yearly_target = ? WHERE ledger_id = ?`,
		b.MonthlyTarget, b.YearlyTarget, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ledger %s: %w", id, ErrNotFound)
	}
	return nil
}

const itemColumns = `item_id, ledger_id, title, category, frequency, risk_level, amount,
	price_min, price_max, next_due_date, status, snooze_until, last_paid_at, required,
	seeded, sa_hint, city_factor_eligible, default_freq, origin, created_at, updated_at`

// SaveItem inserts or replaces an obligation.
func (s *Store) SaveItem(it model.RecurringItem) error {
	var priceMin, priceMax sql.NullFloat64
	if it.PriceBand != nil {
		priceMin = sql.NullFloat64{Float64: it.PriceBand.Min, Valid: true}
		priceMax = sql.NullFloat64{Float64: it.PriceBand.Max, Valid: true}
	}
	var eligible sql.NullInt64
	if it.Seed.CityFactorEligible != nil {
		eligible = sql.NullInt64{Int64: int64(boolInt(*it.Seed.CityFactorEligible)), Valid: true}
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO recurring_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.LedgerID, it.Title, string(it.Category), string(it.Frequency), string(it.RiskLevel),
		model.SanitizeAmount(it.Amount), priceMin, priceMax,
		model.FormatDate(it.NextDueDate), string(it.Status), model.FormatDate(it.SnoozeUntil),
		formatTime(it.LastPaidAt), boolInt(it.Required),
		boolInt(it.Seed.Seeded), it.Seed.SAHint, eligible, it.Seed.DefaultFreq, string(it.Origin),
		formatTime(it.CreatedAt), formatTime(it.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving item %s: %w", it.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads a row and normalizes enums the same way ingestion does,
// so hand-edited databases still load.
func scanItem(r rowScanner) (model.RecurringItem, error) {
	var it model.RecurringItem
	var category, frequency, risk, status, origin string
	var due, snooze, paid, created, updated string
	var priceMin, priceMax sql.NullFloat64
	var eligible sql.NullInt64
	var required, seeded int

	err := r.Scan(&it.ID, &it.LedgerID, &it.Title, &category, &frequency, &risk, &it.Amount,
		&priceMin, &priceMax, &due, &status, &snooze, &paid, &required,
		&seeded, &it.Seed.SAHint, &eligible, &it.Seed.DefaultFreq, &origin, &created, &updated)
	if err != nil {
		return it, err
	}

	it.Category = model.ParseCategory(category)
	it.Frequency = model.ParseFrequency(frequency)
	it.RiskLevel = model.ParseRiskLevel(risk)
	it.Status = model.ParseStatus(status)
	it.Amount = model.SanitizeAmount(it.Amount)
	if priceMin.Valid || priceMax.Valid {
		it.PriceBand = &model.PriceBand{Min: priceMin.Float64, Max: priceMax.Float64}
	}
	it.NextDueDate = parseDay(due)
	it.SnoozeUntil = parseDay(snooze)
	it.LastPaidAt = parseTime(paid)
	it.Required = required != 0
	it.Seed.Seeded = seeded != 0
	if eligible.Valid {
		v := eligible.Int64 != 0
		it.Seed.CityFactorEligible = &v
	}
	it.Origin = model.ClassifyOrigin(it.Seed, it.PriceBand)
	it.CreatedAt = parseTime(created)
	it.UpdatedAt = parseTime(updated)
	return it, nil
}

// GetItem returns one obligation by id.
func (s *Store) GetItem(id string) (model.RecurringItem, error) {
	it, err := scanItem(s.db.QueryRow(`SELECT `+itemColumns+` FROM recurring_items WHERE item_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return it, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return it, err
}

// ListItems returns the obligations of a ledger, or of every ledger when
// ledgerID is empty.
func (s *Store) ListItems(ledgerID string) ([]model.RecurringItem, error) {
	query := `SELECT ` + itemColumns + ` FROM recurring_items`
	var args []any
	if ledgerID != "" {
		query += ` WHERE ledger_id = ?`
		args = append(args, ledgerID)
	}
	query += ` ORDER BY next_due_date, title`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.RecurringItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes an obligation.
func (s *Store) DeleteItem(id string) error {
	res, err := s.db.Exec("DELETE FROM recurring_items WHERE item_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveTransaction inserts or replaces a transaction.
func (s *Store) SaveTransaction(t model.Transaction) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO transactions
		(tx_id, ledger_id, tx_date, amount, tx_type, category, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Owner.LedgerID, model.FormatDate(t.Date), t.Amount, string(t.Type), t.Category, t.Note)
	if err != nil {
		return fmt.Errorf("saving transaction %s: %w", t.ID, err)
	}
	return nil
}

// ListTransactions returns the transactions of a ledger, or of every
// ledger when ledgerID is empty, ordered by date.
func (s *Store) ListTransactions(ledgerID string) ([]model.Transaction, error) {
	query := `SELECT tx_id, ledger_id, tx_date, amount, tx_type, category, note FROM transactions`
	var args []any
	if ledgerID != "" {
		query += ` WHERE ledger_id = ?`
		args = append(args, ledgerID)
	}
	query += ` ORDER BY tx_date, tx_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date, typ string
		if err := rows.Scan(&t.ID, &t.Owner.LedgerID, &date, &t.Amount, &typ, &t.Category, &t.Note); err != nil {
			return nil, err
		}
		t.Date = parseDay(date)
		t.Type = model.ParseTxType(typ)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Counts returns the number of ledgers, obligations, and transactions.
func (s *Store) Counts() (ledgers, items, txs int, err error) {
	err = s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM ledgers),
		(SELECT COUNT(*) FROM recurring_items),
		(SELECT COUNT(*) FROM transactions)`).Scan(&ledgers, &items, &txs)
	return ledgers, items, txs, err
}
