// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/rvial/folio"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&sellCmd{},
	&dividendCmd{},
	&listCmd{},
	&dividendsCmd{},
	&positionsCmd{},
	&gainsCmd{},
	&taxCmd{},
	&ifuCmd{},
	&bracketCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "portfolio.jsonl", "Path to the ledger file containing transactions and dividends (JSONL format)")
var pricesFile = flag.String("prices-file", "", "Path to a JSON quotes document for valuation (optional)")
var pricePath = flag.String("price-path", "$.quotes[%q].last", "jsonpath template locating one ticker's quote in the quotes document")

// decodePortfolio loads the ledger file into a portfolio, with prices when a
// quotes document was given. A missing ledger file yields an empty portfolio.
func decodePortfolio() (*folio.Portfolio, error) {
	p := folio.NewPortfolio()

	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty portfolio")
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	p.Ledger, p.Dividends, err = folio.DecodeBooks(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger file %q: %w", *ledgerFile, err)
	}

	if *pricesFile != "" {
		pf, err := os.Open(*pricesFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open quotes document %q: %w", *pricesFile, err)
		}
		defer pf.Close()
		doc, err := folio.DecodePriceDoc(pf)
		if err != nil {
			return nil, err
		}
		p.Prices = folio.ExtractPrices(doc, *pricePath, "EUR", p.Ledger.Tickers())
	}
	return p, nil
}

// appendRecord appends one JSONL record to the ledger file, creating it if
// needed.
func appendRecord(v any) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeLine(f, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}
