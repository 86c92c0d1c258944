package folio

// Position is the current holding of one ticker: the static cost basis from
// the open lots, plus live valuation fields once a market price is known.
// A position only exists while its quantity is positive.
type Position struct {
	Ticker        string
	Company       string
	Quantity      Quantity
	PRU           Money // weighted-average unit cost of the open lots, fees included
	TotalInvested Money // total cost of the open lots

	// Valuation fields, meaningful only when Priced is true. Without a price
	// the position is carried at cost with zero unrealized P&L.
	Priced            bool
	CurrentPrice      Money
	CurrentValue      Money
	UnrealizedGain    Money
	UnrealizedPercent Percent
}

// newPosition builds the cost-basis view of a ticker from its open lot queue.
// It returns false when the queue is empty (the position no longer exists).
func newPosition(ticker, company string, open lots) (Position, bool) {
	quantity := open.totalQuantity()
	if !quantity.IsPositive() {
		return Position{}, false
	}
	invested := open.totalCost()
	return Position{
		Ticker:        ticker,
		Company:       company,
		Quantity:      quantity,
		PRU:           invested.Div(quantity),
		TotalInvested: invested,
	}, true
}

// Valuate fills the live valuation fields from a market price. A zero or
// negative price is accepted as given; validating prices is the price
// provider's business, not this one's.
func (p *Position) Valuate(currentPrice Money) {
	p.Priced = true
	p.CurrentPrice = currentPrice
	p.CurrentValue = currentPrice.Mul(p.Quantity)
	p.UnrealizedGain = p.CurrentValue.Sub(p.TotalInvested)
	p.UnrealizedPercent = p.UnrealizedGain.PercentOf(p.TotalInvested)
}

// ValuateAtCost carries the position at its cost basis, the fallback when no
// market price is available. Unrealized P&L is zero by construction.
func (p *Position) ValuateAtCost() {
	p.Priced = false
	p.CurrentPrice = p.PRU
	p.CurrentValue = p.TotalInvested
	p.UnrealizedGain = Money{}
	p.UnrealizedPercent = 0
}

// Weight returns the share of this position in a total portfolio value.
func (p Position) Weight(totalValue Money) Percent {
	return p.CurrentValue.PercentOf(totalValue)
}

// BreakEvenPrice returns the unit sell price at which a purchase comes out
// even once both order fees are paid.
func BreakEvenPrice(buyPrice Money, quantity Quantity, buyFee, sellFee Money) Money {
	if !quantity.IsPositive() {
		return Money{}
	}
	return buyPrice.Mul(quantity).Add(buyFee).Add(sellFee).Div(quantity)
}

// ROI returns the return on investment of a final value over an initial one.
func ROI(initial, final Money) Percent {
	return final.Sub(initial).PercentOf(initial)
}

// DividendYield returns the yield of an annual per-share dividend at a price.
func DividendYield(annualPerShare, price Money) Percent {
	return annualPerShare.PercentOf(price)
}
