package renderer

import (
	"fmt"
	"strings"

	"github.com/rvial/folio"
)

// GainsMarkdown renders realized gain/loss lines as a markdown table, one row
// per sale, FIFO order.
func GainsMarkdown(gains []folio.RealizedGainLoss, title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(gains) == 0 {
		fmt.Fprintln(&b, "No realized gains.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Ticker | Qty | Sell Price | Avg Buy | Gain | % |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")

	var total folio.Money
	for _, g := range gains {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			g.SellDate,
			g.Ticker,
			g.QuantitySold,
			g.SellPrice,
			g.AverageBuyPrice,
			g.GainLoss.SignedString(),
			g.GainLossPercent.SignedString(),
		)
		total = total.Add(g.GainLoss)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** | |\n", total.SignedString())

	return b.String()
}
