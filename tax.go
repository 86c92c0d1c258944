package folio

import (
	"github.com/shopspring/decimal"
)

// Breakdown keys exposed by TaxResult. The names follow the French tax forms
// the figures end up on.
const (
	BreakdownIncomeTax     = "impot_revenu"
	BreakdownSocialTax     = "prelevements_sociaux"
	BreakdownCSGDeductible = "csg_deductible"
	BreakdownEffectiveRate = "taux_effectif"
	BreakdownAllowance     = "abattement_40pct"
	BreakdownTaxableBase   = "base_imposable"
	BreakdownMarginalRate  = "taux_marginal"
)

// TaxBracket is one slice of the progressive income tax schedule.
type TaxBracket struct {
	UpTo decimal.Decimal // upper bound of the bracket, zero for the top one
	Rate Percent
	Name string
}

// TaxRates is the immutable policy data of the French investment tax regime.
// Passing it explicitly keeps the engine pure and lets tests (or future tax
// years) swap rate schedules without touching the arithmetic.
type TaxRates struct {
	FlatTax           decimal.Decimal // PFU total rate
	IncomeTax         decimal.Decimal // PFU income tax share
	SocialTax         decimal.Decimal // social levies, identical under both regimes
	CSGDeductible     decimal.Decimal // deductible CSG share, applied to gross
	DividendAllowance decimal.Decimal // progressive-regime allowance on dividends
	Brackets          []TaxBracket    // progressive schedule, ascending
}

// DefaultTaxRates returns the 2024 French rates: PFU 30% (12.8% income +
// 17.2% social), 6.8% deductible CSG, 40% dividend allowance, and the
// five-bracket income schedule.
func DefaultTaxRates() TaxRates {
	return TaxRates{
		FlatTax:           decimal.RequireFromString("0.30"),
		IncomeTax:         decimal.RequireFromString("0.128"),
		SocialTax:         decimal.RequireFromString("0.172"),
		CSGDeductible:     decimal.RequireFromString("0.068"),
		DividendAllowance: decimal.RequireFromString("0.40"),
		Brackets: []TaxBracket{
			{UpTo: decimal.NewFromInt(11294), Rate: 0, Name: "0%"},
			{UpTo: decimal.NewFromInt(28797), Rate: 11, Name: "11%"},
			{UpTo: decimal.NewFromInt(82341), Rate: 30, Name: "30%"},
			{UpTo: decimal.NewFromInt(177106), Rate: 41, Name: "41%"},
			{Rate: 45, Name: "45%"},
		},
	}
}

// TaxResult is the outcome of one tax computation over a gross amount.
// It is a pure value, recomputed on every call.
type TaxResult struct {
	Gross     Money
	Tax       Money
	Net       Money
	Breakdown map[string]decimal.Decimal
}

// PFU computes the flat tax over a gross amount. Dividends and capital gains
// use the exact same formula: no allowance applies under the flat tax.
func (r TaxRates) PFU(gross Money) TaxResult {
	incomeTax := gross.MulRate(r.IncomeTax)
	socialTax := gross.MulRate(r.SocialTax)
	tax := incomeTax.Add(socialTax)

	return TaxResult{
		Gross: gross,
		Tax:   tax,
		Net:   gross.Sub(tax),
		Breakdown: map[string]decimal.Decimal{
			BreakdownIncomeTax:     incomeTax.Decimal(),
			BreakdownSocialTax:     socialTax.Decimal(),
			BreakdownCSGDeductible: gross.MulRate(r.CSGDeductible).Decimal(),
			BreakdownEffectiveRate: r.FlatTax.Mul(decimal.NewFromInt(100)),
		},
	}
}

// Progressive computes the dividend tax under the progressive regime at the
// given marginal rate (TMI, in percent). The 40% allowance reduces the income
// tax base only: social levies stay on the gross.
func (r TaxRates) Progressive(gross Money, marginalRate Percent) TaxResult {
	one := decimal.NewFromInt(1)
	taxable := gross.MulRate(one.Sub(r.DividendAllowance))
	incomeTax := taxable.MulRate(decimal.NewFromFloat(float64(marginalRate) / 100))
	socialTax := gross.MulRate(r.SocialTax)
	tax := incomeTax.Add(socialTax)

	return TaxResult{
		Gross: gross,
		Tax:   tax,
		Net:   gross.Sub(tax),
		Breakdown: map[string]decimal.Decimal{
			BreakdownAllowance:     gross.MulRate(r.DividendAllowance).Decimal(),
			BreakdownTaxableBase:   taxable.Decimal(),
			BreakdownIncomeTax:     incomeTax.Decimal(),
			BreakdownSocialTax:     socialTax.Decimal(),
			BreakdownCSGDeductible: gross.MulRate(r.CSGDeductible).Decimal(),
			BreakdownMarginalRate:  decimal.NewFromFloat(float64(marginalRate)),
			BreakdownEffectiveRate: decimal.NewFromFloat(float64(tax.PercentOf(gross))),
		},
	}
}

// CSGDeductibleOf returns the deductible CSG carried by a gross amount.
func (r TaxRates) CSGDeductibleOf(gross Money) Money {
	return gross.MulRate(r.CSGDeductible)
}

// Regime labels used in comparisons.
const (
	OptionPFU         = "PFU"
	OptionProgressive = "Barème"
)

// RegimeFigures summarizes one regime inside a comparison.
type RegimeFigures struct {
	Net  Money
	Tax  Money
	Rate Percent // effective rate
}

// Comparison is the outcome of weighing the flat tax against the progressive
// regime for the same gross dividend amount.
type Comparison struct {
	PFU         RegimeFigures
	Progressive RegimeFigures
	Difference  Money  // absolute tax difference
	BestOption  string // regime with the strictly lower tax; PFU on exact ties
	Savings     Money  // what the best option saves, zero on ties
}

// Compare weighs the flat tax against the progressive regime for a gross
// dividend at a marginal rate. An exact tie is reported as PFU.
func (r TaxRates) Compare(gross Money, marginalRate Percent) Comparison {
	pfu := r.PFU(gross)
	progressive := r.Progressive(gross, marginalRate)

	// PFU wins when the progressive regime costs at least as much.
	diff := progressive.Tax.Sub(pfu.Tax)
	best := OptionPFU
	if diff.IsNegative() {
		best = OptionProgressive
	}

	return Comparison{
		PFU: RegimeFigures{
			Net:  pfu.Net,
			Tax:  pfu.Tax,
			Rate: Percent(r.FlatTax.Mul(decimal.NewFromInt(100)).InexactFloat64()),
		},
		Progressive: RegimeFigures{
			Net:  progressive.Net,
			Tax:  progressive.Tax,
			Rate: progressive.Tax.PercentOf(gross),
		},
		Difference: diff.Abs(),
		BestOption: best,
		Savings:    diff.Abs(),
	}
}

// AnnualRevenues is the income side of an annual summary.
type AnnualRevenues struct {
	GrossDividends  Money
	CapitalGains    Money
	CapitalLosses   Money
	NetCapitalGains Money // gains - losses, floored at zero
	TotalGross      Money // dividends + net capital gains
}

// RegimePFU is the flat-tax block of an annual summary.
type RegimePFU struct {
	DividendTax    Money
	CapitalGainTax Money
	TotalTax       Money
	TotalNet       Money
	CSGDeductible  Money
}

// RegimeProgressive is the progressive block of an annual summary. Capital
// gains keep the flat tax: French law offers no progressive option for them.
type RegimeProgressive struct {
	DividendTax    Money
	CapitalGainTax Money
	TotalTax       Money
	TotalNet       Money
	TMI            Percent
}

// RegimeComparison weighs the two regime totals of an annual summary.
type RegimeComparison struct {
	Difference Money  // absolute difference of the regime totals
	BestOption string // OptionPFU or OptionProgressive; PFU on exact ties
	Savings    Money
}

// AnnualSummary is the yearly tax picture over aggregate dividend and capital
// gain figures.
type AnnualSummary struct {
	Revenues    AnnualRevenues
	PFU         RegimePFU
	Progressive *RegimeProgressive // nil unless a marginal rate was supplied
	Comparison  *RegimeComparison  // nil unless a marginal rate was supplied
}

// AnnualSummary computes the flat-tax summary over a year's gross dividends
// and realized capital gains and losses. Losses offset gains down to zero,
// never below: there is no loss carry-forward here.
func (r TaxRates) AnnualSummary(dividends, capitalGains, capitalLosses Money) *AnnualSummary {
	netGains := capitalGains.Sub(capitalLosses)
	if netGains.IsNegative() {
		netGains = M(0, netGains.Currency())
	}

	dividendTax := r.PFU(dividends)
	capitalGainTax := r.PFU(netGains)

	return &AnnualSummary{
		Revenues: AnnualRevenues{
			GrossDividends:  dividends,
			CapitalGains:    capitalGains,
			CapitalLosses:   capitalLosses,
			NetCapitalGains: netGains,
			TotalGross:      dividends.Add(netGains),
		},
		PFU: RegimePFU{
			DividendTax:    dividendTax.Tax,
			CapitalGainTax: capitalGainTax.Tax,
			TotalTax:       dividendTax.Tax.Add(capitalGainTax.Tax),
			TotalNet:       dividendTax.Net.Add(capitalGainTax.Net),
			CSGDeductible:  r.CSGDeductibleOf(dividends).Add(r.CSGDeductibleOf(netGains)),
		},
	}
}

// AnnualComparison is AnnualSummary plus the progressive alternative at the
// given marginal rate. Only the dividend leg switches regime.
func (r TaxRates) AnnualComparison(dividends, capitalGains, capitalLosses Money, marginalRate Percent) *AnnualSummary {
	s := r.AnnualSummary(dividends, capitalGains, capitalLosses)

	progressiveDividends := r.Progressive(dividends, marginalRate)
	capitalGainTax := r.PFU(s.Revenues.NetCapitalGains)
	totalTax := progressiveDividends.Tax.Add(capitalGainTax.Tax)

	s.Progressive = &RegimeProgressive{
		DividendTax:    progressiveDividends.Tax,
		CapitalGainTax: capitalGainTax.Tax,
		TotalTax:       totalTax,
		TotalNet:       s.Revenues.TotalGross.Sub(totalTax),
		TMI:            marginalRate,
	}

	diff := totalTax.Sub(s.PFU.TotalTax)
	best := OptionPFU
	if diff.IsNegative() {
		best = OptionProgressive
	}
	s.Comparison = &RegimeComparison{
		Difference: diff.Abs(),
		BestOption: best,
		Savings:    diff.Abs(),
	}
	return s
}

// Bracket returns the marginal rate (TMI) and bracket name for an annual
// taxable income divided by the family quotient. Income beyond the top
// threshold lands in the top bracket.
func (r TaxRates) Bracket(annualIncome Money, parts decimal.Decimal) (Percent, string) {
	incomePerPart := annualIncome.Decimal()
	if parts.IsPositive() {
		incomePerPart = incomePerPart.Div(parts)
	}

	for _, b := range r.Brackets {
		if b.UpTo.IsZero() || incomePerPart.LessThanOrEqual(b.UpTo) {
			return b.Rate, b.Name
		}
	}
	top := r.Brackets[len(r.Brackets)-1]
	return top.Rate, top.Name
}

// IFUWithholding is the flat tax withheld per income category.
type IFUWithholding struct {
	FrenchDividends  Money
	ForeignDividends Money
	CapitalGains     Money
	Total            Money
}

// IFUCSGDeductible is the deductible CSG block of the declaration. Box 6DE
// only carries the French-dividend share.
type IFUCSGDeductible struct {
	Total           Money
	FrenchDividends Money // box 6DE
}

// IFUDeclaration maps the year's raw and tax figures onto the declaration
// boxes of the broker-issued annual statement.
type IFUDeclaration struct {
	FrenchDividends  Money // box 2DC, gross
	ForeignDividends Money // box 2AB, gross
	CapitalGains     Money // box 2CG, gross
	NetCapitalGains  Money // box 2BH, after loss offset
	Withholding      IFUWithholding
	CSGDeductible    IFUCSGDeductible
}

// IFU derives the declaration boxes from the year's aggregates. French and
// foreign dividends are taxed separately because they land on separate boxes.
func (r TaxRates) IFU(dividendsFR, dividendsForeign, capitalGains, capitalLosses Money) IFUDeclaration {
	frTax := r.PFU(dividendsFR)
	foreignTax := r.PFU(dividendsForeign)

	netGains := capitalGains.Sub(capitalLosses)
	if netGains.IsNegative() {
		netGains = M(0, netGains.Currency())
	}
	gainsTax := r.PFU(netGains)

	return IFUDeclaration{
		FrenchDividends:  dividendsFR,
		ForeignDividends: dividendsForeign,
		CapitalGains:     capitalGains,
		NetCapitalGains:  netGains,
		Withholding: IFUWithholding{
			FrenchDividends:  frTax.Tax,
			ForeignDividends: foreignTax.Tax,
			CapitalGains:     gainsTax.Tax,
			Total:            frTax.Tax.Add(foreignTax.Tax).Add(gainsTax.Tax),
		},
		CSGDeductible: IFUCSGDeductible{
			Total: r.CSGDeductibleOf(dividendsFR).
				Add(r.CSGDeductibleOf(dividendsForeign)).
				Add(r.CSGDeductibleOf(netGains)),
			FrenchDividends: r.CSGDeductibleOf(dividendsFR),
		},
	}
}

// TaxEstimate bundles a bracket lookup with the annual summary computed at
// that marginal rate.
type TaxEstimate struct {
	AnnualIncome Money
	TMI          Percent
	Bracket      string
	Parts        decimal.Decimal
	Summary      *AnnualSummary
}

// EstimateTotalTax looks up the marginal bracket for an annual income and
// family quotient, then computes the annual summary at that rate.
func (r TaxRates) EstimateTotalTax(annualIncome, dividends, capitalGains Money, parts decimal.Decimal) TaxEstimate {
	tmi, name := r.Bracket(annualIncome, parts)
	return TaxEstimate{
		AnnualIncome: annualIncome,
		TMI:          tmi,
		Bracket:      name,
		Parts:        parts,
		Summary:      r.AnnualComparison(dividends, capitalGains, Money{}, tmi),
	}
}
