// Package source reads ledger, obligation, and transaction records from
// JSONL import files.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// Options control how records without ids or owners are filled in.
type Options struct {
	DefaultLedger string
	Now           time.Time
	IDs           model.IDGenerator
}

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Path         string
	Ledgers      []model.Ledger
	Items        []model.RecurringItem
	Transactions []model.Transaction
	Skipped      int
	ParseErrors  int
	Err          error
}

// ParseFile reads a JSONL import file. Each line is routed by its
// top-level "kind" field; lines with an unknown kind are skipped, and lines
// that are not valid JSON are counted as parse errors.
func ParseFile(path string, opts Options) ParseResult {
	res := ParseResult{Path: path}
	f, err := os.Open(path) //nolint:gosec // user-supplied import path
	if err != nil {
		res.Err = err
		return res
	}
	defer func() { _ = f.Close() }()

	if opts.IDs == nil {
		opts.IDs = model.UUIDGenerator{}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		kind := extractTopLevelKind(line)
		if kind == "" {
			if !json.Valid(line) {
				res.ParseErrors++
			} else {
				res.Skipped++
			}
			continue
		}

		var raw RawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			res.ParseErrors++
			continue
		}

		switch kind {
		case KindLedger:
			if l, ok := coerceLedger(raw, opts); ok {
				res.Ledgers = append(res.Ledgers, l)
			} else {
				res.Skipped++
			}
		case KindItem:
			if it, ok := coerceItem(raw, opts); ok {
				res.Items = append(res.Items, it)
			} else {
				res.Skipped++
			}
		case KindTransaction:
			if tx, ok := coerceTransaction(raw, opts); ok {
				res.Transactions = append(res.Transactions, tx)
			} else {
				res.Skipped++
			}
		}
	}

	if err := scanner.Err(); err != nil {
		res.Err = err
	}
	return res
}

func coerceLedger(raw RawRecord, opts Options) (model.Ledger, bool) {
	id := string(raw.ID)
	if id == "" {
		id = string(raw.LedgerID)
	}
	if id == "" {
		return model.Ledger{}, false
	}
	l := model.Ledger{
		ID:        id,
		Name:      strings.TrimSpace(raw.Name),
		CreatedAt: parseTimestamp(raw.CreatedAt, opts.Now),
	}
	if l.Name == "" {
		l.Name = id
	}
	if raw.Budgets != nil {
		l.Budgets = model.Budgets{
			MonthlyTarget: float64(raw.Budgets.MonthlyTarget),
			YearlyTarget:  float64(raw.Budgets.YearlyTarget),
		}.Normalize()
	}
	return l, true
}

func coerceItem(raw RawRecord, opts Options) (model.RecurringItem, bool) {
	ledgerID := string(raw.LedgerID)
	if ledgerID == "" {
		ledgerID = opts.DefaultLedger
	}
	if ledgerID == "" || strings.TrimSpace(raw.Title) == "" {
		return model.RecurringItem{}, false
	}

	draft := model.ItemDraft{
		Title:       raw.Title,
		Category:    raw.Category,
		Frequency:   raw.Frequency,
		RiskLevel:   raw.RiskLevel,
		Amount:      float64(raw.Amount),
		NextDueDate: raw.NextDueDate,
		Status:      raw.Status,
		SnoozeUntil: raw.SnoozeUntil,
		Required:    bool(raw.Required),
		Seed: model.SeedMeta{
			Seeded:      bool(raw.Seeded),
			SAHint:      strings.TrimSpace(raw.SAHint),
			DefaultFreq: strings.TrimSpace(raw.DefaultFreq),
		},
	}
	if raw.PriceBand != nil {
		draft.PriceBand = &model.PriceBand{
			Min: model.SanitizeAmount(float64(raw.PriceBand.Min)),
			Max: model.SanitizeAmount(float64(raw.PriceBand.Max)),
		}
	}
	if raw.CityFactorEligible != nil {
		v := bool(*raw.CityFactorEligible)
		draft.Seed.CityFactorEligible = &v
	}

	created := parseTimestamp(raw.CreatedAt, opts.Now)
	it := model.NewRecurringItem(ledgerID, draft, created, opts.IDs)
	if id := string(raw.ID); id != "" {
		it.ID = id
	}
	it.UpdatedAt = parseTimestamp(raw.UpdatedAt, created)
	it.LastPaidAt = parseTimestamp(raw.LastPaidAt, time.Time{})
	return it, true
}

func coerceTransaction(raw RawRecord, opts Options) (model.Transaction, bool) {
	ledgerID := ""
	if raw.Owner != nil {
		ledgerID = string(raw.Owner.LedgerID)
	}
	if ledgerID == "" {
		ledgerID = string(raw.LedgerID)
	}
	if ledgerID == "" {
		ledgerID = opts.DefaultLedger
	}
	if ledgerID == "" {
		return model.Transaction{}, false
	}

	date, _ := model.ParseDate(raw.Date)
	tx := model.Transaction{
		ID:       string(raw.ID),
		Owner:    model.OwnerRef{LedgerID: ledgerID},
		Date:     date,
		Amount:   float64(raw.Amount),
		Type:     model.ParseTxType(raw.Type),
		Category: strings.TrimSpace(raw.Category),
		Note:     strings.TrimSpace(raw.Note),
	}
	if tx.ID == "" {
		tx.ID = opts.IDs.NewID()
	}
	// Typed transactions are stored as magnitudes; untyped keep their sign
	// so Direction can classify them.
	if tx.Type != model.TxUnset && tx.Amount < 0 {
		tx.Amount = -tx.Amount
	}
	return tx, true
}

// parseTimestamp accepts RFC3339 timestamps or plain dates, falling back
// to def.
func parseTimestamp(s string, def time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, ok := model.ParseDate(s); ok {
		return t
	}
	return def
}

// kindKey is the byte sequence for a JSON key named "kind" (with quotes).
var kindKey = []byte(`"kind"`)

// extractTopLevelKind finds the top-level "kind" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "kind" keys are ignored.
func extractTopLevelKind(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], kindKey) {
				val, isKey := classifyKind(line, i+len(kindKey))
				if isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// classifyKind checks whether pos follows a JSON key and returns its value
// when it is one of the known record kinds.
func classifyKind(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 20 {
		return "", true
	}
	v := strings.ToLower(string(line[i : i+end]))
	switch v {
	case KindLedger, KindItem, KindTransaction:
		return v, true
	case "recurring", "recurringitem", "obligation":
		return KindItem, true
	case "tx":
		return KindTransaction, true
	}
	return "", true
}

// skipJSONString advances past a JSON string starting at the opening quote.
//
//nolint:gosec // manual bounds checking throughout
func skipJSONString(line []byte, i int) int {
	i++
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
