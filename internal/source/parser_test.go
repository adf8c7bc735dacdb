package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

type fixedIDs struct{ n int }

func (f *fixedIDs) NewID() string {
	f.n++
	return "gen-" + string(rune('0'+f.n))
}

var testOpts = Options{
	DefaultLedger: "L1",
	Now:           time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC),
}

// writeImport creates a temp JSONL file and returns its path.
func writeImport(t *testing.T, dir string, name string, lines ...string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_Ledger(t *testing.T) {
	path := writeImport(t, "", "ledgers.jsonl",
		`{"kind":"ledger","id":"office","name":"Main office","budgets":{"monthlyTarget":"5,000","yearlyTarget":-3}}`,
		`{"kind":"ledger","name":"no id"}`,
	)
	res := ParseFile(path, testOpts)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if len(res.Ledgers) != 1 || res.Skipped != 1 {
		t.Fatalf("ledgers = %d skipped = %d", len(res.Ledgers), res.Skipped)
	}
	l := res.Ledgers[0]
	if l.Name != "Main office" || l.Budgets.MonthlyTarget != 5000 || l.Budgets.YearlyTarget != 0 {
		t.Errorf("ledger = %+v", l)
	}
}

func TestParseFile_ItemCoercion(t *testing.T) {
	ids := &fixedIDs{}
	opts := testOpts
	opts.IDs = ids
	path := writeImport(t, "", "items.jsonl",
		`{"kind":"item","ledgerId":"L9","title":"Municipal license","category":"SYSTEM","frequency":"annual","riskLevel":"High","amount":"-20","nextDueDate":"2025-6-1","required":"yes","saHint":"license","createdAt":"2025-01-01T00:00:00Z"}`,
		`{"kind":"item","id":42,"title":"Ads","amount":300,"priceBand":{"min":"100","max":500},"status":"weird"}`,
		`{"kind":"item","title":"   "}`,
	)

	res := ParseFile(path, opts)
	if len(res.Items) != 2 || res.Skipped != 1 {
		t.Fatalf("items = %d skipped = %d", len(res.Items), res.Skipped)
	}

	lic := res.Items[0]
	if lic.ID != "gen-1" || lic.LedgerID != "L9" {
		t.Errorf("identity = %q/%q", lic.ID, lic.LedgerID)
	}
	if lic.Category != model.CategorySystem || lic.Frequency != model.Monthly || lic.RiskLevel != model.RiskHigh {
		t.Errorf("enums = %s/%s/%s", lic.Category, lic.Frequency, lic.RiskLevel)
	}
	if lic.Amount != 0 || !lic.Required {
		t.Errorf("amount/required = %v/%v", lic.Amount, lic.Required)
	}
	if !lic.NextDueDate.Equal(model.Day(2025, 6, 1)) {
		t.Errorf("NextDueDate = %v", lic.NextDueDate)
	}
	if lic.Origin != model.OriginSeeded {
		t.Errorf("Origin = %q", lic.Origin)
	}
	if !lic.CreatedAt.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) || !lic.UpdatedAt.Equal(lic.CreatedAt) {
		t.Errorf("timestamps = %v/%v", lic.CreatedAt, lic.UpdatedAt)
	}

	ads := res.Items[1]
	if ads.ID != "42" || ads.LedgerID != "L1" || ads.Status != model.StatusOpen {
		t.Errorf("ads = %+v", ads)
	}
	if ads.PriceBand == nil || ads.PriceBand.Min != 100 || ads.Origin != model.OriginSeeded {
		t.Errorf("ads band/origin = %v/%q", ads.PriceBand, ads.Origin)
	}
}

func TestParseFile_Transactions(t *testing.T) {
	path := writeImport(t, "", "tx.jsonl",
		`{"kind":"transaction","id":"t1","owner":{"ledgerId":"L2"},"date":"2025-03-01","amount":-150,"type":"expense","category":"maintenance"}`,
		`{"kind":"tx","id":"t2","date":"2025-03-02","amount":-80}`,
		`{"kind":"transaction","id":"t3","ledgerId":"L3","date":"garbage","amount":"12.5","type":"INCOME"}`,
	)
	res := ParseFile(path, testOpts)
	if len(res.Transactions) != 3 {
		t.Fatalf("transactions = %d", len(res.Transactions))
	}

	t1, t2, t3 := res.Transactions[0], res.Transactions[1], res.Transactions[2]
	if t1.Owner.LedgerID != "L2" || t1.Amount != 150 || t1.Direction() != model.TxExpense {
		t.Errorf("t1 = %+v", t1)
	}
	if t2.Owner.LedgerID != "L1" || t2.Amount != -80 || t2.Direction() != model.TxExpense {
		t.Errorf("t2 = %+v", t2)
	}
	if t3.Owner.LedgerID != "L3" || !t3.Date.IsZero() || t3.Amount != 12.5 || t3.Type != model.TxIncome {
		t.Errorf("t3 = %+v", t3)
	}
}

func TestParseFile_ParseErrorsAndSkips(t *testing.T) {
	path := writeImport(t, "", "mixed.jsonl",
		`{"kind":"item","title":"ok","amount":1}`,
		`not json at all`,
		`{"kind":"item","title":"broken",`,
		`{"kind":"budget","x":1}`,
		`{"meta":{"kind":"item"}}`,
		``,
		`# comment`,
	)
	res := ParseFile(path, testOpts)
	if len(res.Items) != 1 {
		t.Errorf("items = %d, want 1", len(res.Items))
	}
	if res.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", res.ParseErrors)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl"), testOpts)
	if res.Err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractTopLevelKind(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`{"kind":"item"}`, "item"},
		{`{"kind": "Ledger"}`, "ledger"},
		{`{"note":"kind","kind":"tx"}`, "transaction"},
		{`{"owner":{"kind":"ledger"},"kind":"transaction"}`, "transaction"},
		{`{"kind":7}`, ""},
		{`{"title":"x"}`, ""},
	}
	for _, tt := range tests {
		if got := extractTopLevelKind([]byte(tt.line)); got != tt.want {
			t.Errorf("extractTopLevelKind(%s) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLoad_MergesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeImport(t, dir, "b.jsonl", `{"kind":"item","id":"b","title":"B","amount":2}`)
	writeImport(t, dir, "a.jsonl",
		`{"kind":"ledger","id":"L1","name":"L1"}`,
		`{"kind":"item","id":"a","title":"A","amount":1}`,
	)
	writeImport(t, dir, "notes.txt", `ignored`)
	extra := writeImport(t, "", "c.jsonl", `{"kind":"transaction","id":"t","amount":5}`)

	var calls atomic.Int64
	batch, err := Load(context.Background(), []string{dir, extra}, testOpts, func(_, total int) {
		calls.Add(1)
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if batch.TotalFiles != 3 || batch.ParsedFiles != 3 || calls.Load() != 3 {
		t.Errorf("files = %d/%d, progress calls = %d", batch.ParsedFiles, batch.TotalFiles, calls.Load())
	}
	if len(batch.Ledgers) != 1 || len(batch.Items) != 2 || len(batch.Transactions) != 1 {
		t.Fatalf("batch = %d ledgers, %d items, %d tx", len(batch.Ledgers), len(batch.Items), len(batch.Transactions))
	}
	if batch.Items[0].ID != "a" || batch.Items[1].ID != "b" {
		t.Errorf("item order = %s, %s", batch.Items[0].ID, batch.Items[1].ID)
	}
}

func TestLoad_MissingPath(t *testing.T) {
	if _, err := Load(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, testOpts, nil); err == nil {
		t.Error("expected error for missing path")
	}
}
