package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rvial/folio"
)

// TaxMarkdown renders an annual tax summary, with the progressive columns
// when a marginal rate was supplied.
func TaxMarkdown(s *folio.AnnualSummary, year int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Summary %d\n\n", year)

	fmt.Fprint(&b, "## Revenues\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Gross dividends | %s |\n", s.Revenues.GrossDividends)
	fmt.Fprintf(&b, "| Capital gains | %s |\n", s.Revenues.CapitalGains)
	fmt.Fprintf(&b, "| Capital losses | %s |\n", s.Revenues.CapitalLosses)
	fmt.Fprintf(&b, "| Net capital gains | %s |\n", s.Revenues.NetCapitalGains)
	fmt.Fprintf(&b, "| **Total gross** | **%s** |\n", s.Revenues.TotalGross)

	fmt.Fprint(&b, "\n## PFU (flat tax 30%)\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Tax on dividends | %s |\n", s.PFU.DividendTax)
	fmt.Fprintf(&b, "| Tax on capital gains | %s |\n", s.PFU.CapitalGainTax)
	fmt.Fprintf(&b, "| **Total tax** | **%s** |\n", s.PFU.TotalTax)
	fmt.Fprintf(&b, "| **Total net** | **%s** |\n", s.PFU.TotalNet)
	fmt.Fprintf(&b, "| Deductible CSG | %s |\n", s.PFU.CSGDeductible)

	ConditionalBlock(&b, func(w io.Writer) bool {
		if s.Progressive == nil || s.Comparison == nil {
			return false
		}
		fmt.Fprintf(w, "\n## Progressive (TMI %s)\n\n", s.Progressive.TMI)
		fmt.Fprintln(w, "| | Amount |")
		fmt.Fprintln(w, "|:---|---:|")
		fmt.Fprintf(w, "| Tax on dividends | %s |\n", s.Progressive.DividendTax)
		fmt.Fprintf(w, "| Tax on capital gains | %s |\n", s.Progressive.CapitalGainTax)
		fmt.Fprintf(w, "| **Total tax** | **%s** |\n", s.Progressive.TotalTax)
		fmt.Fprintf(w, "| **Total net** | **%s** |\n", s.Progressive.TotalNet)

		fmt.Fprintf(w, "\nBest option: **%s**, saving %s.\n",
			s.Comparison.BestOption, s.Comparison.Savings)
		return true
	})

	return b.String()
}

// ComparisonMarkdown renders a single-amount regime comparison.
func ComparisonMarkdown(c folio.Comparison, gross folio.Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PFU vs Progressive for %s\n\n", gross)
	fmt.Fprintln(&b, "| Regime | Tax | Net | Effective rate |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	fmt.Fprintf(&b, "| PFU | %s | %s | %s |\n", c.PFU.Tax, c.PFU.Net, c.PFU.Rate)
	fmt.Fprintf(&b, "| Progressive | %s | %s | %s |\n", c.Progressive.Tax, c.Progressive.Net, c.Progressive.Rate)
	fmt.Fprintf(&b, "\nBest option: **%s**, saving %s.\n", c.BestOption, c.Savings)

	return b.String()
}

// IFUMarkdown renders the declaration boxes for one year.
func IFUMarkdown(d folio.IFUDeclaration, year int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# IFU %d\n\n", year)
	fmt.Fprintln(&b, "| Box | | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	fmt.Fprintf(&b, "| 2DC | French dividends (gross) | %s |\n", d.FrenchDividends)
	fmt.Fprintf(&b, "| 2AB | Foreign dividends (gross) | %s |\n", d.ForeignDividends)
	fmt.Fprintf(&b, "| 2CG | Capital gains (gross) | %s |\n", d.CapitalGains)
	fmt.Fprintf(&b, "| 2BH | Net capital gains | %s |\n", d.NetCapitalGains)
	fmt.Fprintf(&b, "| 6DE | Deductible CSG on French dividends | %s |\n", d.CSGDeductible.FrenchDividends)

	fmt.Fprint(&b, "\n## Withholding\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| On French dividends | %s |\n", d.Withholding.FrenchDividends)
	fmt.Fprintf(&b, "| On foreign dividends | %s |\n", d.Withholding.ForeignDividends)
	fmt.Fprintf(&b, "| On capital gains | %s |\n", d.Withholding.CapitalGains)
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", d.Withholding.Total)
	fmt.Fprintf(&b, "\nTotal deductible CSG: %s\n", d.CSGDeductible.Total)

	return b.String()
}
