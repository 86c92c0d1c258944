package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rvial/folio"
	"github.com/rvial/folio/renderer"
)

// --- Tax Command ---

type taxCmd struct {
	year  int
	tmi   float64
	gross float64
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "annual tax summary, PFU vs progressive" }
func (*taxCmd) Usage() string {
	return `pft tax [-y <year>] [-tmi <rate>] [-gross <amount>]

  Computes the year's tax under the 30% flat tax. With -tmi, also computes
  the progressive alternative at that marginal rate and names the cheaper
  option. With -gross, compares both regimes for a single dividend amount
  instead of the ledger's year.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", time.Now().Year(), "Tax year")
	f.Float64Var(&c.tmi, "tmi", -1, "Marginal tax rate in percent (e.g. 30)")
	f.Float64Var(&c.gross, "gross", 0, "Compare regimes for this single gross dividend amount")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rates := folio.DefaultTaxRates()

	if c.gross > 0 {
		if c.tmi < 0 {
			fmt.Fprintln(os.Stderr, "-gross requires -tmi")
			return subcommands.ExitUsageError
		}
		gross := folio.EUR(c.gross)
		printMarkdown(renderer.ComparisonMarkdown(rates.Compare(gross, folio.Percent(c.tmi)), gross))
		return subcommands.ExitSuccess
	}

	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var summary *folio.AnnualSummary
	if c.tmi >= 0 {
		summary = p.AnnualTaxComparison(c.year, folio.Percent(c.tmi))
	} else {
		summary = p.AnnualTaxReport(c.year)
	}
	printMarkdown(renderer.TaxMarkdown(summary, c.year))
	return subcommands.ExitSuccess
}

// --- IFU Command ---

type ifuCmd struct {
	year    int
	foreign string
}

func (*ifuCmd) Name() string     { return "ifu" }
func (*ifuCmd) Synopsis() string { return "derive the annual declaration boxes (IFU)" }
func (*ifuCmd) Usage() string {
	return `pft ifu [-y <year>] [-foreign <tickers>]

  Derives the declaration boxes (2DC, 2AB, 2CG, 2BH, 6DE) from the year's
  dividends and realized gains. -foreign is a comma separated list of
  tickers whose dividends are foreign-source.
`
}

func (c *ifuCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", time.Now().Year(), "Tax year")
	f.StringVar(&c.foreign, "foreign", "", "Comma separated tickers paying from abroad")
}

func (c *ifuCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var foreign func(string) bool
	if c.foreign != "" {
		tickers := strings.Split(c.foreign, ",")
		foreign = func(ticker string) bool { return slices.Contains(tickers, ticker) }
	}

	printMarkdown(renderer.IFUMarkdown(p.IFU(c.year, foreign), c.year))
	return subcommands.ExitSuccess
}

// --- Bracket Command ---

type bracketCmd struct {
	income    float64
	parts     float64
	dividends float64
	gains     float64
}

func (*bracketCmd) Name() string     { return "bracket" }
func (*bracketCmd) Synopsis() string { return "marginal tax bracket lookup and estimate" }
func (*bracketCmd) Usage() string {
	return `pft bracket -income <amount> [-parts <n>] [-dividends <amount>] [-gains <amount>]

  Looks up the marginal tax bracket (TMI) for an annual taxable income and
  family quotient. With -dividends or -gains, also estimates the investment
  tax at that rate under both regimes.
`
}

func (c *bracketCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.income, "income", 0, "Annual taxable income in EUR")
	f.Float64Var(&c.parts, "parts", 1, "Family quotient parts")
	f.Float64Var(&c.dividends, "dividends", 0, "Gross annual dividends in EUR")
	f.Float64Var(&c.gains, "gains", 0, "Realized capital gains in EUR")
}

func (c *bracketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.income <= 0 || c.parts <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	rates := folio.DefaultTaxRates()
	estimate := rates.EstimateTotalTax(folio.EUR(c.income), folio.EUR(c.dividends), folio.EUR(c.gains), folio.Q(c.parts).Decimal())

	fmt.Printf("Income %s over %s part(s): bracket %s, TMI %s\n",
		estimate.AnnualIncome, estimate.Parts, estimate.Bracket, estimate.TMI)
	if c.dividends > 0 || c.gains > 0 {
		printMarkdown(renderer.TaxMarkdown(estimate.Summary, time.Now().Year()))
	}
	return subcommands.ExitSuccess
}

// --- Fmt Command ---

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pft fmt

  Reads the whole ledger file, validates it, sorts transactions by date and
  writes everything back in a canonical JSONL form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := decodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := folio.EncodeBooks(out, p.Ledger, p.Dividends); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %q: %d transaction(s), %d dividend(s).\n",
		*ledgerFile, p.Ledger.Len(), p.Dividends.Len())
	return subcommands.ExitSuccess
}
