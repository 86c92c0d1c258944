package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rvial/folio"
)

// Helper function to create a temporary ledger file
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test_ledger.jsonl")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp ledger: %v", err)
	}
	return name
}

// withLedgerFile points the global ledger file at a temp path for one test.
func withLedgerFile(t *testing.T, name string) {
	t.Helper()
	old := ledgerFile
	ledgerFile = &name
	t.Cleanup(func() { ledgerFile = old })
}

func TestDecodePortfolio(t *testing.T) {
	content := `{"command":"buy","date":"2024-05-02","ticker":"AIR","company":"Airbus","quantity":10,"price":150,"fee":1}
{"command":"buy","date":"2025-01-10","ticker":"MC","company":"LVMH","quantity":2,"price":700,"fee":1}
{"command":"sell","date":"2025-06-20","ticker":"AIR","quantity":4,"price":180,"fee":1}
{"command":"dividend","date":"2025-03-20","ticker":"TTE","perShare":0.79,"quantityOwned":20,"tax":0,"status":"received"}
`
	withLedgerFile(t, createTempLedger(t, content))

	p, err := decodePortfolio()
	if err != nil {
		t.Fatalf("decodePortfolio() = %v", err)
	}
	if p.Ledger.Len() != 3 {
		t.Errorf("Ledger.Len() = %d, want 3", p.Ledger.Len())
	}
	if p.Dividends.Len() != 1 {
		t.Errorf("Dividends.Len() = %d, want 1", p.Dividends.Len())
	}
	// Derived amounts come back from the factories, not from the file.
	tx, ok := p.Ledger.Find(1)
	if !ok || !tx.TotalCost.Equal(folio.EUR(1501)) { // 10*150 + 1
		t.Errorf("Find(1).TotalCost = %s %v, want 1501", tx.TotalCost, ok)
	}
}

func TestDecodePortfolio_MissingFile(t *testing.T) {
	withLedgerFile(t, filepath.Join(t.TempDir(), "absent.jsonl"))

	p, err := decodePortfolio()
	if err != nil {
		t.Fatalf("decodePortfolio() = %v, want an empty portfolio", err)
	}
	if p.Ledger.Len() != 0 || p.Dividends.Len() != 0 {
		t.Errorf("portfolio not empty: %d transactions, %d dividends", p.Ledger.Len(), p.Dividends.Len())
	}
}

func TestListTransactions_CombinesFilters(t *testing.T) {
	content := `{"command":"buy","date":"2024-05-02","ticker":"AIR","company":"Airbus","quantity":10,"price":150,"fee":1}
{"command":"buy","date":"2025-01-10","ticker":"MC","company":"LVMH","quantity":2,"price":700,"fee":1}
{"command":"sell","date":"2025-06-20","ticker":"AIR","quantity":4,"price":180,"fee":1}
`
	withLedgerFile(t, createTempLedger(t, content))
	p, err := decodePortfolio()
	if err != nil {
		t.Fatalf("decodePortfolio() = %v", err)
	}

	// -t and -y together must intersect, not union.
	txs, title := listTransactions(p.Ledger, "AIR", 2025)
	if title != "Transactions for AIR in 2025" {
		t.Errorf("title = %q", title)
	}
	if len(txs) != 1 {
		t.Fatalf("len(txs) = %d, want 1", len(txs))
	}
	if txs[0].Ticker != "AIR" || txs[0].Date.Year() != 2025 {
		t.Errorf("filter let through %v", txs[0])
	}

	txs, title = listTransactions(p.Ledger, "", 0)
	if title != "Transactions" || len(txs) != 3 {
		t.Errorf("unfiltered list = %d %q, want 3 \"Transactions\"", len(txs), title)
	}
}

func TestListGains_Filters(t *testing.T) {
	content := `{"command":"buy","date":"2024-05-02","ticker":"AIR","company":"Airbus","quantity":10,"price":150,"fee":1}
{"command":"sell","date":"2024-11-03","ticker":"AIR","quantity":2,"price":160,"fee":1}
{"command":"sell","date":"2025-06-20","ticker":"AIR","quantity":4,"price":180,"fee":1}
`
	withLedgerFile(t, createTempLedger(t, content))
	p, err := decodePortfolio()
	if err != nil {
		t.Fatalf("decodePortfolio() = %v", err)
	}

	gains, title := listGains(p.Ledger, "AIR", 2025)
	if title != "Realized Gains for AIR in 2025" {
		t.Errorf("title = %q", title)
	}
	if len(gains) != 1 {
		t.Fatalf("len(gains) = %d, want 1", len(gains))
	}
	if gains[0].SellDate.Year() != 2025 {
		t.Errorf("filter let through the 2024 sale: %v", gains[0])
	}

	gains, _ = listGains(p.Ledger, "", 0)
	if len(gains) != 2 {
		t.Errorf("unfiltered gains = %d, want 2", len(gains))
	}
}
