package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rvial/folio"
)

// PositionsMarkdown renders the whole-portfolio snapshot as a markdown table,
// one row per open position plus a totals row.
func PositionsMarkdown(s folio.Snapshot) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio\n\n")
	fmt.Fprintln(&b, "| Ticker | Company | Qty | PRU | Invested | Price | Value | Gain | % | Weight |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|")

	for _, p := range s.Positions {
		price := p.CurrentPrice.String()
		if !p.Priced {
			price = "n/a"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			p.Ticker,
			p.Company,
			p.Quantity,
			p.PRU,
			p.TotalInvested,
			price,
			p.CurrentValue,
			p.UnrealizedGain.SignedString(),
			p.UnrealizedPercent.SignedString(),
			p.Weight(s.TotalValue),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | | **%s** | **%s** | **%s** | |\n",
		s.TotalInvested,
		s.TotalValue,
		s.UnrealizedGain.SignedString(),
		s.UnrealizedPercent.SignedString(),
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		if s.Unpriced == 0 {
			return false
		}
		fmt.Fprintf(w, "\n%d position(s) valued at cost: no market price available.\n", s.Unpriced)
		return true
	})

	return b.String()
}

// MetricsMarkdown renders the performance figures for one year.
func MetricsMarkdown(m folio.Metrics, year int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Performance %d\n\n", year)
	if m.Best != nil {
		fmt.Fprintf(&b, "- Best: %s (%s)\n", m.Best.Ticker, m.Best.UnrealizedPercent.SignedString())
	}
	if m.Worst != nil {
		fmt.Fprintf(&b, "- Worst: %s (%s)\n", m.Worst.Ticker, m.Worst.UnrealizedPercent.SignedString())
	}
	fmt.Fprintf(&b, "- Dividend yield: %s\n", m.DividendYield)
	fmt.Fprintf(&b, "- Average PRU (value weighted): %s\n", m.AveragePRU)
	fmt.Fprintf(&b, "- Total fees paid: %s\n", m.TotalFees)

	return b.String()
}
