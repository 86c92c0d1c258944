package folio

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// ErrOversell is returned by Validate when a sell exceeds the quantity held.
// The lot queue itself tolerates over-sells and floors at zero; validation is
// where strict callers learn about them.
var ErrOversell = errors.New("insufficient quantity held")

// Ledger represents the list of all recorded transactions.
//
// In a Ledger transactions are always in chronological order, same-day ties
// broken by insertion identity, so FIFO replays are deterministic.
type Ledger struct {
	transactions []Transaction
	nextID       int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0), nextID: 1}
}

// Append adds transactions to this ledger, assigns identities to the new ones,
// and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		if tx.ID == 0 {
			tx.ID = l.nextID
		}
		if tx.ID >= l.nextID {
			l.nextID = tx.ID + 1
		}
		l.transactions = append(l.transactions, tx)
	}
	l.stableSort()
}

// stableSort sorts the ledger by transaction date, identity order breaking
// same-day ties.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		a, b := l.transactions[i], l.transactions[j]
		if a.Date == b.Date {
			return a.ID < b.ID
		}
		return a.Date.Before(b.Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator that yields each transaction in
// chronological order. When filters are given, a transaction is yielded only
// if every filter accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByTicker returns a predicate that filters transactions by ticker.
func ByTicker(ticker string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Ticker == ticker }
}

// ByYear returns a predicate that filters transactions by calendar year.
func ByYear(year int) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Date.Year() == year }
}

// BySide returns a predicate that filters transactions by side.
func BySide(side Side) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Side == side }
}

// TickerTransactions returns the chronological transaction history for one
// ticker, as an independent slice safe to replay.
func (l *Ledger) TickerTransactions(ticker string) []Transaction {
	var txs []Transaction
	for _, tx := range l.Transactions(ByTicker(ticker)) {
		txs = append(txs, tx)
	}
	return txs
}

// Find returns the transaction with the given identity.
func (l *Ledger) Find(id int64) (Transaction, bool) {
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Tickers iterates over the distinct tickers in the ledger, sorted.
func (l *Ledger) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			visited[tx.Ticker] = struct{}{}
		}
		tickers := slices.Collect(maps.Keys(visited))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(ticker) {
				return
			}
		}
	}
}

// Company returns the most recent company name recorded for a ticker.
func (l *Ledger) Company(ticker string) string {
	name := ""
	for _, tx := range l.transactions {
		if tx.Ticker == ticker && tx.Company != "" {
			name = tx.Company
		}
	}
	return name
}

// openLots replays the full history of a ticker and returns its open lot queue.
func (l *Ledger) openLots(ticker string) lots {
	return buildLots(l.TickerTransactions(ticker))
}

// Holding computes the quantity of a ticker held on a given date, flooring at
// zero like the lot queue does.
func (l *Ledger) Holding(ticker string, on Date) Quantity {
	var open lots
	for _, tx := range l.transactions {
		if tx.Ticker != ticker || tx.Date.After(on) {
			continue
		}
		switch tx.Side {
		case Buy:
			open = append(open, lot{Buy: tx.ID, Date: tx.Date, Quantity: tx.Quantity, Cost: tx.TotalCost})
		case Sell:
			open = open.sell(tx.Quantity)
		}
	}
	return open.totalQuantity()
}

// Validate checks a transaction for correctness against the current portfolio
// state. A sell larger than the quantity held is reported as an ErrOversell;
// the ledger would still replay it (flooring at zero) if appended anyway.
func (l *Ledger) Validate(tx Transaction) error {
	if err := tx.Check(); err != nil {
		return fmt.Errorf("invalid %s transaction: %w", tx.Side, err)
	}
	if tx.Side == Sell {
		held := l.Holding(tx.Ticker, tx.Date)
		if tx.Quantity.GreaterThan(held) {
			return fmt.Errorf("%w: have %s %s on %s, selling %s",
				ErrOversell, held, tx.Ticker, tx.Date, tx.Quantity)
		}
	}
	return nil
}

// TotalFees sums the fees of every transaction in the ledger.
func (l *Ledger) TotalFees() Money {
	var total Money
	for _, tx := range l.transactions {
		total = total.Add(tx.Fee)
	}
	return total
}
