package folio

// Portfolio ties the transaction ledger, the dividend book, a price source
// and the tax policy together. It is the entry point the commands use.
type Portfolio struct {
	Ledger    *Ledger
	Dividends *DividendBook
	Prices    PriceSource
	Rates     TaxRates
	Fees      Fees
}

// NewPortfolio creates an empty portfolio with the default fee schedule and
// the current tax rates.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Ledger:    NewLedger(),
		Dividends: NewDividendBook(),
		Rates:     DefaultTaxRates(),
		Fees:      DefaultFees(),
	}
}

// price looks up a ticker in the price source, if any.
func (p *Portfolio) price(ticker string) (Money, bool) {
	if p.Prices == nil {
		return Money{}, false
	}
	return p.Prices.Price(ticker)
}

// Positions computes every open position, valued at the latest known price.
// Tickers without a price fall back to cost basis with zero unrealized P&L.
func (p *Portfolio) Positions() []Position {
	var positions []Position
	for ticker := range p.Ledger.Tickers() {
		pos, ok := p.Position(ticker)
		if !ok {
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}

// Position computes the open position for one ticker, false when fully sold
// or unknown.
func (p *Portfolio) Position(ticker string) (Position, bool) {
	pos, ok := newPosition(ticker, p.Ledger.Company(ticker), p.Ledger.openLots(ticker))
	if !ok {
		return Position{}, false
	}
	if price, priced := p.price(ticker); priced {
		pos.Valuate(price)
	} else {
		pos.ValuateAtCost()
	}
	return pos, true
}

// Snapshot is the whole-portfolio picture at the latest known prices.
type Snapshot struct {
	Positions         []Position
	TotalInvested     Money
	TotalValue        Money
	UnrealizedGain    Money
	UnrealizedPercent Percent
	Priced            int // positions valued at a market price
	Unpriced          int // positions valued at cost
}

// Snapshot values every open position and aggregates the totals. Position
// weights are relative to the total portfolio value.
func (p *Portfolio) Snapshot() Snapshot {
	s := Snapshot{Positions: p.Positions()}
	for _, pos := range s.Positions {
		s.TotalInvested = s.TotalInvested.Add(pos.TotalInvested)
		s.TotalValue = s.TotalValue.Add(pos.CurrentValue)
		if pos.Priced {
			s.Priced++
		} else {
			s.Unpriced++
		}
	}
	s.UnrealizedGain = s.TotalValue.Sub(s.TotalInvested)
	s.UnrealizedPercent = s.UnrealizedGain.PercentOf(s.TotalInvested)
	return s
}

// Metrics are whole-portfolio performance figures over one year.
type Metrics struct {
	Best          *Position // best unrealized performance, nil when unpriced
	Worst         *Position
	DividendYield Percent // year's gross dividends over the current value
	TotalFees     Money
	AveragePRU    Money // value-weighted
}

// Metrics computes the performance figures for a year over the current
// snapshot. Best and worst only consider positions with a market price.
func (p *Portfolio) Metrics(year int) Metrics {
	s := p.Snapshot()
	m := Metrics{TotalFees: p.Ledger.TotalFees()}

	var dividends, weightedPRU Money
	for i := range s.Positions {
		pos := &s.Positions[i]
		dividends = dividends.Add(p.Dividends.AnnualGross(pos.Ticker, year))
		weightedPRU = weightedPRU.Add(pos.PRU.MulRate(pos.CurrentValue.Decimal()))
		if !pos.Priced {
			continue
		}
		if m.Best == nil || pos.UnrealizedPercent > m.Best.UnrealizedPercent {
			m.Best = pos
		}
		if m.Worst == nil || pos.UnrealizedPercent < m.Worst.UnrealizedPercent {
			m.Worst = pos
		}
	}
	m.DividendYield = dividends.PercentOf(s.TotalValue)
	if s.TotalValue.IsPositive() {
		m.AveragePRU = weightedPRU.DivRate(s.TotalValue.Decimal())
	}
	return m
}

// AnnualTaxReport computes the year's flat-tax summary from the received
// dividends and the realized gains and losses.
func (p *Portfolio) AnnualTaxReport(year int) *AnnualSummary {
	gains, losses := p.Ledger.RealizedInYear(year)
	return p.Rates.AnnualSummary(p.Dividends.YearSummary(year).Gross, gains, losses)
}

// AnnualTaxComparison is AnnualTaxReport with the progressive alternative at
// the given marginal rate.
func (p *Portfolio) AnnualTaxComparison(year int, marginalRate Percent) *AnnualSummary {
	gains, losses := p.Ledger.RealizedInYear(year)
	return p.Rates.AnnualComparison(p.Dividends.YearSummary(year).Gross, gains, losses, marginalRate)
}

// IFU derives the year's declaration boxes. foreign tells which tickers pay
// from abroad; nil treats every dividend as French-source.
func (p *Portfolio) IFU(year int, foreign func(ticker string) bool) IFUDeclaration {
	var divFR, divForeign Money
	for _, d := range p.Dividends.Year(year) {
		if d.Status != Received {
			continue
		}
		if foreign != nil && foreign(d.Ticker) {
			divForeign = divForeign.Add(d.Gross)
		} else {
			divFR = divFR.Add(d.Gross)
		}
	}
	gains, losses := p.Ledger.RealizedInYear(year)
	return p.Rates.IFU(divFR, divForeign, gains, losses)
}
