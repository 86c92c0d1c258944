package folio

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
)

// Fees holds the broker fee schedule. The zero value means free trading;
// use DefaultFees for the flat per-order fee of the supported broker.
type Fees struct {
	Order Money // flat fee charged on every buy or sell order
}

// DefaultFees returns the broker's standard fee schedule (1 EUR per order).
func DefaultFees() Fees {
	return Fees{Order: EUR(1)}
}

// Transaction is a single buy or sell order, immutable after creation.
//
// TotalCost is always derived at construction: for a buy it is what leaves the
// account (quantity x price + fee), for a sell it is what lands on it
// (quantity x price - fee). A legitimately zero fee therefore never triggers
// any recomputation later.
type Transaction struct {
	ID        int64 // assigned by the ledger, monotonic
	Ticker    string
	Company   string
	Side      Side
	Quantity  Quantity
	Price     Money // per share
	Fee       Money
	Date      Date
	Note      string
	TotalCost Money
}

// NewBuy creates a buy transaction with its derived total cost.
func NewBuy(day Date, ticker, company string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{
		Ticker:    ticker,
		Company:   company,
		Side:      Buy,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Date:      day,
		TotalCost: price.Mul(quantity).Add(fee),
	}
}

// NewSell creates a sell transaction with its derived net proceeds.
func NewSell(day Date, ticker, company string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{
		Ticker:    ticker,
		Company:   company,
		Side:      Sell,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Date:      day,
		TotalCost: price.Mul(quantity).Sub(fee),
	}
}

// CostPerShare returns the all-in unit cost of the transaction (fee included).
func (t Transaction) CostPerShare() Money {
	if t.Quantity.IsZero() {
		return M(0, t.Price.Currency())
	}
	return t.TotalCost.Div(t.Quantity)
}

// Check verifies the transaction's own invariants, independently of any
// portfolio state.
func (t Transaction) Check() error {
	if t.Ticker == "" {
		return errors.New("ticker is missing")
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", t.Price)
	}
	if t.Fee.IsNegative() {
		return fmt.Errorf("fee cannot be negative, got %s", t.Fee)
	}
	if t.Date.IsZero() {
		return errors.New("date is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction,
// keeping the ledger file field order stable.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Side.String())
	w.Append("date", t.Date)
	w.Optional("id", t.ID)
	w.Append("ticker", t.Ticker)
	w.Optional("company", t.Company)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Append("fee", t.Fee.Decimal())
	if cur := t.Price.Currency(); cur != "" && cur != money.EUR {
		w.Append("currency", cur)
	}
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}
