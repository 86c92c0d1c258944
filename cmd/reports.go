package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rvial/folio"
	"github.com/rvial/folio/renderer"
)

// --- List Command ---

type listCmd struct {
	ticker string
	year   int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions in the ledger" }
func (*listCmd) Usage() string {
	return `pft list [-t <ticker>] [-y <year>]

  Lists transactions from the ledger in chronological order.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only transactions for this ticker")
	f.IntVar(&c.year, "y", 0, "Only transactions of this year")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	txs, title := listTransactions(p.Ledger, c.ticker, c.year)
	printMarkdown(renderer.TransactionsMarkdown(txs, title))
	return subcommands.ExitSuccess
}

// listTransactions applies both filters, so -t and -y narrow each other down.
func listTransactions(l *folio.Ledger, ticker string, year int) ([]folio.Transaction, string) {
	var filters []func(folio.Transaction) bool
	title := "Transactions"
	if ticker != "" {
		filters = append(filters, folio.ByTicker(ticker))
		title = fmt.Sprintf("Transactions for %s", ticker)
	}
	if year != 0 {
		filters = append(filters, folio.ByYear(year))
		title = fmt.Sprintf("%s in %d", title, year)
	}

	var txs []folio.Transaction
	for _, tx := range l.Transactions(filters...) {
		txs = append(txs, tx)
	}
	return txs, title
}

// --- Dividends Command ---

type dividendsCmd struct {
	ticker string
	year   int
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "list dividends and the year's aggregate" }
func (*dividendsCmd) Usage() string {
	return `pft dividends [-t <ticker>] [-y <year>]

  Lists the dividends taxable in a year, with the received and planned
  aggregates.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only dividends of this ticker")
	f.IntVar(&c.year, "y", time.Now().Year(), "Year of the dividends")
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	book := p.Dividends
	if c.ticker != "" {
		book = folio.NewDividendBook()
		for _, d := range p.Dividends.All() {
			if d.Ticker == c.ticker {
				book.Append(d)
			}
		}
	}

	printMarkdown(renderer.DividendsMarkdown(book.Year(c.year), book.YearSummary(c.year)))
	return subcommands.ExitSuccess
}

// --- Positions Command ---

type positionsCmd struct {
	perf bool
	year int
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display open positions and portfolio totals" }
func (*positionsCmd) Usage() string {
	return `pft positions [-perf] [-y <year>]

  Values every open position at the latest known price. Tickers without a
  price are valued at cost. With -perf, appends the year's performance
  figures.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.perf, "perf", false, "Append performance figures")
	f.IntVar(&c.year, "y", time.Now().Year(), "Year for the performance figures")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	md := renderer.PositionsMarkdown(p.Snapshot())
	if c.perf {
		md += "\n" + renderer.MetricsMarkdown(p.Metrics(c.year), c.year)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// --- Gains Command ---

type gainsCmd struct {
	ticker string
	year   int
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis, FIFO" }
func (*gainsCmd) Usage() string {
	return `pft gains [-t <ticker>] [-y <year>]

  Computes the realized gain or loss of every sale by consuming buy lots
  first-in first-out, the method French tax law mandates.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only sales of this ticker")
	f.IntVar(&c.year, "y", 0, "Only sales of this year")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	gains, title := listGains(p.Ledger, c.ticker, c.year)
	printMarkdown(renderer.GainsMarkdown(gains, title))
	return subcommands.ExitSuccess
}

func listGains(l *folio.Ledger, ticker string, year int) ([]folio.RealizedGainLoss, string) {
	var gains []folio.RealizedGainLoss
	title := "Realized Gains"
	if ticker != "" {
		gains = l.RealizedGains(ticker)
		title = fmt.Sprintf("Realized Gains for %s", ticker)
	} else {
		gains = l.AllRealizedGains()
	}
	if year != 0 {
		filtered := gains[:0]
		for _, g := range gains {
			if g.SellDate.Year() == year {
				filtered = append(filtered, g)
			}
		}
		gains = filtered
		title = fmt.Sprintf("%s in %d", title, year)
	}
	return gains, title
}
