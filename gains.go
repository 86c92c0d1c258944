package folio

import (
	"errors"
	"fmt"
)

// ErrSaleNotFound is returned when a realized gain is requested for a
// transaction that is not a sell recorded in the ledger. Guessing a result
// for an unknown sale would silently corrupt tax figures.
var ErrSaleNotFound = errors.New("sale transaction not found in history")

// RealizedGainLoss is the outcome of one sale matched FIFO against the lots
// open immediately before it. It is recomputed on demand from the transaction
// history, never stored.
type RealizedGainLoss struct {
	Sale            int64 // ID of the sell transaction
	Ticker          string
	QuantitySold    Quantity // quantity actually matched against open lots
	SellPrice       Money    // per share
	AverageBuyPrice Money    // weighted unit cost of the consumed lots, fee included
	GainLoss        Money    // net proceeds minus consumed cost
	GainLossPercent Percent
	SellDate        Date
	BuyLots         []int64 // IDs of the buy transactions consumed, oldest first
}

// realizedOnSale computes the gain or loss of one sell against the given open
// lot queue. The queue is not modified; callers advancing a replay must call
// lots.sell afterwards.
func realizedOnSale(open lots, sell Transaction) RealizedGainLoss {
	// An over-sell floors at what the open lots actually hold.
	consumedQty := sell.Quantity.Min(open.totalQuantity())
	consumedCost := open.fifoCostOfSelling(consumedQty)
	used := open.fifoConsumed(consumedQty)

	var averageBuyPrice Money
	if consumedQty.IsPositive() {
		averageBuyPrice = consumedCost.Div(consumedQty)
	}

	// Net proceeds, already fee-adjusted by the transaction factory.
	sellAmount := sell.TotalCost
	gain := sellAmount.Sub(consumedCost)

	return RealizedGainLoss{
		Sale:            sell.ID,
		Ticker:          sell.Ticker,
		QuantitySold:    consumedQty,
		SellPrice:       sell.Price,
		AverageBuyPrice: averageBuyPrice,
		GainLoss:        gain,
		GainLossPercent: gain.PercentOf(consumedCost),
		SellDate:        sell.Date,
		BuyLots:         used,
	}
}

// RealizedGains computes the gain or loss of every sell of a ticker, replaying
// buys and sells interleaved in true date order so each sell is matched
// against the lots open at that exact point in history.
func (l *Ledger) RealizedGains(ticker string) []RealizedGainLoss {
	var results []RealizedGainLoss
	var open lots

	for _, tx := range l.Transactions(ByTicker(ticker)) {
		switch tx.Side {
		case Buy:
			open = append(open, lot{Buy: tx.ID, Date: tx.Date, Quantity: tx.Quantity, Cost: tx.TotalCost})
		case Sell:
			results = append(results, realizedOnSale(open, tx))
			open = open.sell(tx.Quantity)
		}
	}
	return results
}

// AllRealizedGains computes realized gains for every ticker in the ledger,
// tickers in sorted order, sells in chronological order within a ticker.
func (l *Ledger) AllRealizedGains() []RealizedGainLoss {
	var results []RealizedGainLoss
	for ticker := range l.Tickers() {
		results = append(results, l.RealizedGains(ticker)...)
	}
	return results
}

// RealizedGainForSale computes the gain or loss of one specific recorded sale.
// It returns ErrSaleNotFound when the identity does not name a sell in the
// ledger.
func (l *Ledger) RealizedGainForSale(id int64) (RealizedGainLoss, error) {
	sale, ok := l.Find(id)
	if !ok || sale.Side != Sell {
		return RealizedGainLoss{}, fmt.Errorf("%w: id %d", ErrSaleNotFound, id)
	}
	for _, result := range l.RealizedGains(sale.Ticker) {
		if result.Sale == id {
			return result, nil
		}
	}
	return RealizedGainLoss{}, fmt.Errorf("%w: id %d", ErrSaleNotFound, id)
}

// TotalRealizedGains sums the realized gains and losses of the whole ledger.
func (l *Ledger) TotalRealizedGains() Money {
	var total Money
	for _, result := range l.AllRealizedGains() {
		total = total.Add(result.GainLoss)
	}
	return total
}

// RealizedInYear splits the realized results of one calendar year into
// aggregate gains and aggregate losses, both reported as positive amounts,
// the shape the tax engine consumes.
func (l *Ledger) RealizedInYear(year int) (gains, losses Money) {
	for _, result := range l.AllRealizedGains() {
		if result.SellDate.Year() != year {
			continue
		}
		if result.GainLoss.IsNegative() {
			losses = losses.Add(result.GainLoss.Neg())
		} else {
			gains = gains.Add(result.GainLoss)
		}
	}
	return gains, losses
}
