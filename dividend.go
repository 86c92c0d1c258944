package folio

import (
	"fmt"
	"sort"

	"github.com/Rhymond/go-money"
)

// DividendStatus tracks the lifecycle of a dividend entry.
type DividendStatus int

const (
	// Planned marks a dividend announced but not yet paid out.
	Planned DividendStatus = iota
	// Received marks a dividend credited to the account.
	Received
)

func (s DividendStatus) String() string {
	switch s {
	case Planned:
		return "planned"
	case Received:
		return "received"
	default:
		return "unknown"
	}
}

// ParseDividendStatus parses a string into a DividendStatus.
func ParseDividendStatus(str string) (DividendStatus, error) {
	switch str {
	case "planned":
		return Planned, nil
	case "received":
		return Received, nil
	default:
		return 0, fmt.Errorf("unknown dividend status: %q", str)
	}
}

// Dividend records one distribution for one ticker. Gross and net amounts are
// derived at construction, never patched afterwards.
type Dividend struct {
	ID            int64
	Ticker        string
	Company       string
	PerShare      Money
	ExDate        Date
	PaymentDate   Date
	QuantityOwned Quantity
	Gross         Money // perShare x quantityOwned
	Tax           Money // withholding already applied at the source
	Net           Money // gross - tax
	Status        DividendStatus
	Note          string
}

// NewDividend creates a dividend entry with its derived gross and net amounts.
func NewDividend(ticker, company string, perShare Money, exDate, paymentDate Date, quantity Quantity, tax Money, status DividendStatus) Dividend {
	gross := perShare.Mul(quantity)
	return Dividend{
		Ticker:        ticker,
		Company:       company,
		PerShare:      perShare,
		ExDate:        exDate,
		PaymentDate:   paymentDate,
		QuantityOwned: quantity,
		Gross:         gross,
		Tax:           tax,
		Net:           gross.Sub(tax),
		Status:        status,
	}
}

// MarshalJSON implements the json.Marshaler interface for Dividend, keeping
// the ledger file field order stable. Derived amounts are not persisted.
func (d Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", "dividend")
	w.Append("date", d.ExDate)
	w.Optional("id", d.ID)
	w.Append("ticker", d.Ticker)
	w.Optional("company", d.Company)
	w.Append("perShare", d.PerShare.Decimal())
	if cur := d.PerShare.Currency(); cur != "" && cur != money.EUR {
		w.Append("currency", cur)
	}
	w.Optional("paymentDate", d.PaymentDate)
	w.Append("quantityOwned", d.QuantityOwned)
	w.Append("tax", d.Tax.Decimal())
	w.Append("status", d.Status.String())
	w.Optional("note", d.Note)
	return w.MarshalJSON()
}

// taxDate is the date the dividend is taxable on: the payment date, falling
// back to the ex-date when no payment date is recorded.
func (d Dividend) taxDate() Date {
	if d.PaymentDate.IsZero() {
		return d.ExDate
	}
	return d.PaymentDate
}

// DividendBook holds all dividend entries, in no particular order.
type DividendBook struct {
	entries []Dividend
	nextID  int64
}

// NewDividendBook creates an empty dividend book.
func NewDividendBook() *DividendBook {
	return &DividendBook{nextID: 1}
}

// Append adds dividends to the book, assigning identities to the new ones.
func (b *DividendBook) Append(divs ...Dividend) {
	for _, d := range divs {
		if d.ID == 0 {
			d.ID = b.nextID
		}
		if d.ID >= b.nextID {
			b.nextID = d.ID + 1
		}
		b.entries = append(b.entries, d)
	}
}

// Len returns the number of entries in the book.
func (b *DividendBook) Len() int { return len(b.entries) }

// All returns a copy of every entry.
func (b *DividendBook) All() []Dividend {
	return append([]Dividend(nil), b.entries...)
}

// Year returns the entries taxable in one calendar year, sorted by taxable
// date, identity order breaking same-day ties.
func (b *DividendBook) Year(year int) []Dividend {
	var divs []Dividend
	for _, d := range b.entries {
		if d.taxDate().Year() == year {
			divs = append(divs, d)
		}
	}
	sort.Slice(divs, func(i, j int) bool {
		if divs[i].taxDate() != divs[j].taxDate() {
			return divs[i].taxDate().Before(divs[j].taxDate())
		}
		return divs[i].ID < divs[j].ID
	})
	return divs
}

// DividendSummary aggregates one year of dividends, the shape the tax engine
// and the reports consume.
type DividendSummary struct {
	Year          int
	Gross         Money // gross of received dividends
	Tax           Money
	Net           Money
	PlannedGross  Money // gross of dividends still planned for the year
	ReceivedCount int
}

// YearSummary aggregates the book's entries for one calendar year, keyed on
// the payment date (the year the income is taxable in).
func (b *DividendBook) YearSummary(year int) DividendSummary {
	s := DividendSummary{Year: year}
	for _, d := range b.entries {
		if d.taxDate().Year() != year {
			continue
		}
		switch d.Status {
		case Received:
			s.Gross = s.Gross.Add(d.Gross)
			s.Tax = s.Tax.Add(d.Tax)
			s.Net = s.Net.Add(d.Net)
			s.ReceivedCount++
		case Planned:
			s.PlannedGross = s.PlannedGross.Add(d.Gross)
		}
	}
	return s
}

// AnnualGross sums the gross dividends of one ticker for one year, planned
// and received alike: an estimate of the ticker's yearly distribution used
// for yield figures.
func (b *DividendBook) AnnualGross(ticker string, year int) Money {
	var total Money
	for _, d := range b.entries {
		if d.Ticker == ticker && d.taxDate().Year() == year {
			total = total.Add(d.Gross)
		}
	}
	return total
}

// TotalReceived sums the net amount of every received dividend in the book.
func (b *DividendBook) TotalReceived() Money {
	var total Money
	for _, d := range b.entries {
		if d.Status == Received {
			total = total.Add(d.Net)
		}
	}
	return total
}
