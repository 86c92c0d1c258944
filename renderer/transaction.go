package renderer

import (
	"fmt"
	"strings"

	"github.com/rvial/folio"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx folio.Transaction) string {
	switch tx.Side {
	case folio.Buy:
		return fmt.Sprintf("Bought %s of %s at %s (total %s)", tx.Quantity, tx.Ticker, tx.Price, tx.TotalCost)
	case folio.Sell:
		return fmt.Sprintf("Sold %s of %s at %s (net %s)", tx.Quantity, tx.Ticker, tx.Price, tx.TotalCost)
	default:
		return fmt.Sprintf("%s %s of %s", tx.Side, tx.Quantity, tx.Ticker)
	}
}

// TransactionsMarkdown renders the transaction log as a markdown table.
func TransactionsMarkdown(txs []folio.Transaction, title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Id | Date | Side | Ticker | Qty | Price | Fee | Total |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|---:|---:|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.ID, tx.Date, tx.Side, tx.Ticker, tx.Quantity, tx.Price, tx.Fee, tx.TotalCost)
	}

	return b.String()
}

// DividendsMarkdown renders dividend entries and the year's aggregate.
func DividendsMarkdown(divs []folio.Dividend, summary folio.DividendSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dividends %d\n\n", summary.Year)
	if len(divs) == 0 {
		fmt.Fprintln(&b, "No dividends.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Ex-Date | Ticker | Per Share | Qty | Gross | Tax | Net | Status |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|:---|")
	for _, d := range divs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			d.ExDate, d.Ticker, d.PerShare, d.QuantityOwned, d.Gross, d.Tax, d.Net, d.Status)
	}
	fmt.Fprintf(&b, "\nReceived: %s gross, %s tax, %s net over %d payment(s).\n",
		summary.Gross, summary.Tax, summary.Net, summary.ReceivedCount)
	if !summary.PlannedGross.IsZero() {
		fmt.Fprintf(&b, "Planned: %s gross.\n", summary.PlannedGross)
	}

	return b.String()
}
