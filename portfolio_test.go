package folio

import (
	"testing"
	"time"
)

// demoPortfolio builds a two-ticker portfolio with one priced ticker, one
// dividend and one realized sale in 2025.
func demoPortfolio(t *testing.T) *Portfolio {
	t.Helper()

	p := NewPortfolio()
	p.Ledger.Append(
		NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(1)),
		NewBuy(NewDate(2025, time.February, 15), "AIR", "Airbus", Q(5), EUR(160), EUR(1)),
		NewSell(NewDate(2025, time.June, 20), "AIR", "Airbus", Q(12), EUR(180), EUR(1)),
		NewBuy(NewDate(2025, time.March, 1), "TTE", "TotalEnergies", Q(20), EUR(60), EUR(1)),
	)
	p.Dividends.Append(
		NewDividend("TTE", "TotalEnergies", EUR(0.79), NewDate(2025, time.April, 1), NewDate(2025, time.April, 15), Q(20), EUR(0), Received),
	)

	prices := NewPriceTable()
	prices.Set("TTE", EUR(62))
	p.Prices = prices
	return p
}

func TestPortfolio_Positions(t *testing.T) {
	p := demoPortfolio(t)

	positions := p.Positions()
	if len(positions) != 2 {
		t.Fatalf("Positions() returned %d, want 2", len(positions))
	}

	// Tickers come out sorted: AIR then TTE.
	air := positions[0]
	if air.Ticker != "AIR" {
		t.Fatalf("first position is %q, want AIR", air.Ticker)
	}
	// 3 shares left after the FIFO sale, valued at cost (no AIR price).
	if !air.Quantity.Equal(Q(3)) {
		t.Errorf("AIR quantity = %s, want 3", air.Quantity)
	}
	if air.Priced {
		t.Error("AIR position is priced, want cost fallback")
	}
	if !air.CurrentValue.Equal(EUR(480.6)) { // 3/5 of the 801 lot
		t.Errorf("AIR value = %s, want 480.60", air.CurrentValue)
	}

	tte := positions[1]
	if !tte.Priced {
		t.Fatal("TTE position is not priced")
	}
	if !tte.CurrentValue.Equal(EUR(1240)) { // 20 * 62
		t.Errorf("TTE value = %s, want 1240", tte.CurrentValue)
	}
	if !tte.UnrealizedGain.Equal(EUR(39)) { // 1240 - 1201
		t.Errorf("TTE unrealized = %s, want 39", tte.UnrealizedGain)
	}
}

func TestPortfolio_Snapshot(t *testing.T) {
	p := demoPortfolio(t)

	s := p.Snapshot()

	if s.Priced != 1 || s.Unpriced != 1 {
		t.Errorf("Priced/Unpriced = %d/%d, want 1/1", s.Priced, s.Unpriced)
	}
	if !s.TotalInvested.Equal(EUR(1681.6)) { // 480.60 + 1201
		t.Errorf("TotalInvested = %s, want 1681.60", s.TotalInvested)
	}
	if !s.TotalValue.Equal(EUR(1720.6)) { // 480.60 + 1240
		t.Errorf("TotalValue = %s, want 1720.60", s.TotalValue)
	}
	if !s.UnrealizedGain.Equal(EUR(39)) {
		t.Errorf("UnrealizedGain = %s, want 39", s.UnrealizedGain)
	}
}

func TestPortfolio_Metrics(t *testing.T) {
	p := demoPortfolio(t)

	m := p.Metrics(2025)

	// Only the priced TTE qualifies for best and worst.
	if m.Best == nil || m.Best.Ticker != "TTE" {
		t.Errorf("Best = %v, want TTE", m.Best)
	}
	if m.Worst == nil || m.Worst.Ticker != "TTE" {
		t.Errorf("Worst = %v, want TTE", m.Worst)
	}
	if !m.TotalFees.Equal(EUR(4)) {
		t.Errorf("TotalFees = %s, want 4", m.TotalFees)
	}
	// 15.80 of dividends over a 1720.60 portfolio.
	if !m.DividendYield.Equal(0.9183) {
		t.Errorf("DividendYield = %s, want ~0.92%%", m.DividendYield)
	}
	// (160.20*480.60 + 60.05*1240) / 1720.60, computed in exact decimals.
	if got := m.AveragePRU.Decimal().StringFixed(4); got != "88.0240" {
		t.Errorf("AveragePRU = %s, want 88.0240", got)
	}
}

func TestPortfolio_AnnualTaxReport(t *testing.T) {
	p := demoPortfolio(t)

	s := p.AnnualTaxReport(2025)

	if !s.Revenues.GrossDividends.Equal(EUR(15.8)) {
		t.Errorf("GrossDividends = %s, want 15.80", s.Revenues.GrossDividends)
	}
	if !s.Revenues.CapitalGains.Equal(EUR(337.6)) {
		t.Errorf("CapitalGains = %s, want 337.60", s.Revenues.CapitalGains)
	}
	if !s.Revenues.CapitalLosses.IsZero() {
		t.Errorf("CapitalLosses = %s, want 0", s.Revenues.CapitalLosses)
	}
	// 30% of (15.80 + 337.60).
	if !s.PFU.TotalTax.Equal(EUR(106.02)) {
		t.Errorf("TotalTax = %s, want 106.02", s.PFU.TotalTax)
	}

	c := p.AnnualTaxComparison(2025, 11)
	if c.Comparison == nil {
		t.Fatal("comparison missing")
	}
	if c.Comparison.BestOption != OptionProgressive {
		t.Errorf("BestOption = %q, want %q at TMI 11", c.Comparison.BestOption, OptionProgressive)
	}
}

func TestPortfolio_IFU(t *testing.T) {
	p := demoPortfolio(t)

	all := p.IFU(2025, nil)
	if !all.FrenchDividends.Equal(EUR(15.8)) {
		t.Errorf("2DC = %s, want 15.80", all.FrenchDividends)
	}
	if !all.ForeignDividends.IsZero() {
		t.Errorf("2AB = %s, want 0", all.ForeignDividends)
	}
	if !all.NetCapitalGains.Equal(EUR(337.6)) {
		t.Errorf("2BH = %s, want 337.60", all.NetCapitalGains)
	}

	split := p.IFU(2025, func(ticker string) bool { return ticker == "TTE" })
	if !split.FrenchDividends.IsZero() {
		t.Errorf("2DC = %s, want 0 once TTE is foreign", split.FrenchDividends)
	}
	if !split.ForeignDividends.Equal(EUR(15.8)) {
		t.Errorf("2AB = %s, want 15.80", split.ForeignDividends)
	}
}

func TestPortfolio_NoPrices(t *testing.T) {
	p := NewPortfolio()
	p.Ledger.Append(NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(1)))

	s := p.Snapshot()
	if s.Priced != 0 || s.Unpriced != 1 {
		t.Errorf("Priced/Unpriced = %d/%d, want 0/1", s.Priced, s.Unpriced)
	}
	if !s.TotalValue.Equal(s.TotalInvested) {
		t.Errorf("TotalValue = %s, want the cost basis %s", s.TotalValue, s.TotalInvested)
	}
	if !s.UnrealizedGain.IsZero() {
		t.Errorf("UnrealizedGain = %s, want 0", s.UnrealizedGain)
	}
}
