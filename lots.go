package folio

// lot represents the still-open remainder of a single purchase, used for FIFO
// cost basis calculations. Cost carries the purchase fee, so the cost per
// share is preserved when the lot is partially consumed.
type lot struct {
	Buy      int64 // ID of the originating buy transaction
	Date     Date
	Quantity Quantity
	Cost     Money // total cost of the remaining shares (fee included)
}

// CostPerShare returns the unit cost of the lot.
func (l lot) CostPerShare() Money {
	if l.Quantity.IsZero() {
		return Money{}
	}
	return l.Cost.Div(l.Quantity)
}

type lots []lot

// fifoCostOfSelling calculates the cost of selling a quantity of shares using
// FIFO. Selling more than held simply costs the whole queue: the caller is
// responsible for flagging over-sells, the queue itself floors at zero.
func (l lots) fifoCostOfSelling(quantityToSell Quantity) Money {
	var costOfSoldShares Money

	for _, currentLot := range l {
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			costOfSoldShares = costOfSoldShares.Add(costOfSoldPortion)
			return costOfSoldShares
		}
		// Full sale of this lot
		costOfSoldShares = costOfSoldShares.Add(currentLot.Cost)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	return costOfSoldShares
}

// fifoConsumed returns the IDs of the buy transactions a FIFO sale of the
// given quantity would draw from, oldest first.
func (l lots) fifoConsumed(quantityToSell Quantity) []int64 {
	var used []int64
	for _, currentLot := range l {
		if !quantityToSell.IsPositive() {
			break
		}
		used = append(used, currentLot.Buy)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	return used
}

// sell reduces the available lots by a given quantity to sell using the FIFO
// method. A partially consumed lot keeps its cost per share.
func (l lots) sell(quantityToSell Quantity) lots {
	var remainingLots lots

	for _, currentLot := range l {
		if quantityToSell.IsZero() {
			remainingLots = append(remainingLots, currentLot)
			continue
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			newLot := lot{
				Buy:      currentLot.Buy,
				Date:     currentLot.Date,
				Quantity: currentLot.Quantity.Sub(quantityToSell),
				Cost:     currentLot.Cost.Sub(costOfSoldPortion),
			}
			remainingLots = append(remainingLots, newLot)
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}
	return remainingLots
}

// totalQuantity sums the remaining quantity over all lots.
func (l lots) totalQuantity() Quantity {
	var total Quantity
	for _, currentLot := range l {
		total = total.Add(currentLot.Quantity)
	}
	return total
}

// totalCost sums the remaining cost over all lots.
func (l lots) totalCost() Money {
	var total Money
	for _, currentLot := range l {
		total = total.Add(currentLot.Cost)
	}
	return total
}

// buildLots replays a chronological slice of transactions for one ticker and
// returns the queue of open lots. Buys append, sells consume FIFO.
func buildLots(txs []Transaction) lots {
	var open lots
	for _, tx := range txs {
		switch tx.Side {
		case Buy:
			open = append(open, lot{Buy: tx.ID, Date: tx.Date, Quantity: tx.Quantity, Cost: tx.TotalCost})
		case Sell:
			open = open.sell(tx.Quantity)
		}
	}
	return open
}
