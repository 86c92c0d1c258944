package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rvial/folio"
)

// --- Add (buy) Command ---

type addCmd struct {
	date     string
	ticker   string
	company  string
	quantity float64
	price    float64
	fee      float64
	note     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*addCmd) Usage() string {
	return `pft add -t <ticker> -q <quantity> -p <price> [-d <date>] [-f <fee>] [-c <company>] [-m <note>]

  Records a purchase of shares. The total cost (quantity x price + fee) is
  derived once and stored with the transaction.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker")
	f.StringVar(&c.company, "c", "", "Company name")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share in EUR")
	f.Float64Var(&c.fee, "f", folio.DefaultFees().Order.AsFloat(), "Broker fee in EUR")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := folio.NewBuy(day, c.ticker, c.company, folio.Q(c.quantity), folio.EUR(c.price), folio.EUR(c.fee))
	tx.Note = c.note
	if err := tx.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return appendRecord(tx)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	fee      float64
	note     string
	force    bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares from an existing position" }
func (*sellCmd) Usage() string {
	return `pft sell -t <ticker> -q <quantity> -p <price> [-d <date>] [-f <fee>] [-m <note>] [-force]

  Records a sale of shares. The sale is checked against the holding on that
  date; selling more than held is refused unless -force is given.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share in EUR")
	f.Float64Var(&c.fee, "f", folio.DefaultFees().Order.AsFloat(), "Broker fee in EUR")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
	f.BoolVar(&c.force, "force", false, "Record the sale even if it exceeds the current holding")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx := folio.NewSell(day, c.ticker, p.Ledger.Company(c.ticker), folio.Q(c.quantity), folio.EUR(c.price), folio.EUR(c.fee))
	tx.Note = c.note
	if err := p.Ledger.Validate(tx); err != nil {
		if !c.force {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return appendRecord(tx)
}

// --- Dividend Command ---

type dividendCmd struct {
	exDate      string
	paymentDate string
	ticker      string
	perShare    float64
	quantity    float64
	tax         float64
	status      string
	note        string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend distribution" }
func (*dividendCmd) Usage() string {
	return `pft dividend -t <ticker> -a <per-share> [-d <ex-date>] [-pay <payment-date>] [-q <quantity>] [-tax <withholding>] [-status planned|received] [-m <note>]

  Records a dividend. The gross amount (per-share x quantity) and the net
  amount are derived once and stored with the entry. When -q is omitted the
  holding at the ex-date is used.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exDate, "d", folio.Today().String(), "Ex-dividend date (YYYY-MM-DD)")
	f.StringVar(&c.paymentDate, "pay", "", "Payment date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker")
	f.Float64Var(&c.perShare, "a", 0, "Dividend per share in EUR")
	f.Float64Var(&c.quantity, "q", 0, "Quantity owned at the ex-date (defaults to the current holding)")
	f.Float64Var(&c.tax, "tax", 0, "Withholding already applied at the source, in EUR")
	f.StringVar(&c.status, "status", "received", "Dividend status (planned, received)")
	f.StringVar(&c.note, "m", "", "An optional note")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.perShare <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	exDate, err := folio.ParseDate(c.exDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing ex-date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var paymentDate folio.Date
	if c.paymentDate != "" {
		paymentDate, err = folio.ParseDate(c.paymentDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing payment date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	status, err := folio.ParseDividendStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quantity := folio.Q(c.quantity)
	if quantity.IsZero() {
		quantity = p.Ledger.Holding(c.ticker, exDate)
	}
	if !quantity.IsPositive() {
		fmt.Fprintf(os.Stderr, "no shares of %q held on %s\n", c.ticker, exDate)
		return subcommands.ExitUsageError
	}

	d := folio.NewDividend(c.ticker, p.Ledger.Company(c.ticker), folio.EUR(c.perShare), exDate, paymentDate, quantity, folio.EUR(c.tax), status)
	d.Note = c.note
	return appendRecord(d)
}
