package folio

import (
	"testing"
	"time"
)

func TestNewBuy_DerivesTotalCost(t *testing.T) {
	tx := NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(1))

	if !tx.TotalCost.Equal(EUR(1501)) { // 10 * 150 + 1
		t.Errorf("TotalCost = %s, want 1501", tx.TotalCost)
	}
	if !tx.CostPerShare().Equal(EUR(150.1)) {
		t.Errorf("CostPerShare() = %s, want 150.10", tx.CostPerShare())
	}
}

func TestNewSell_DerivesNetProceeds(t *testing.T) {
	tx := NewSell(NewDate(2025, time.June, 20), "AIR", "Airbus", Q(12), EUR(180), EUR(1))

	if !tx.TotalCost.Equal(EUR(2159)) { // 12 * 180 - 1
		t.Errorf("TotalCost = %s, want 2159", tx.TotalCost)
	}
}

func TestNewBuy_ZeroFeeStaysZero(t *testing.T) {
	// A legitimately free order: the total must be exactly quantity x price,
	// with no fee defaulting sneaking in afterwards.
	tx := NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(0))

	if !tx.TotalCost.Equal(EUR(1500)) {
		t.Errorf("TotalCost = %s, want 1500", tx.TotalCost)
	}
	if err := tx.Check(); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}

func TestTransaction_Check(t *testing.T) {
	day := NewDate(2025, time.January, 10)

	testCases := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{name: "Valid", tx: NewBuy(day, "AIR", "Airbus", Q(10), EUR(150), EUR(1))},
		{name: "Missing ticker", tx: NewBuy(day, "", "", Q(10), EUR(150), EUR(1)), wantErr: true},
		{name: "Zero quantity", tx: NewBuy(day, "AIR", "", Q(0), EUR(150), EUR(1)), wantErr: true},
		{name: "Negative quantity", tx: NewBuy(day, "AIR", "", Q(-1), EUR(150), EUR(1)), wantErr: true},
		{name: "Zero price", tx: NewBuy(day, "AIR", "", Q(10), EUR(0), EUR(1)), wantErr: true},
		{name: "Negative fee", tx: NewBuy(day, "AIR", "", Q(10), EUR(150), EUR(-1)), wantErr: true},
		{name: "Missing date", tx: NewBuy(Date{}, "AIR", "", Q(10), EUR(150), EUR(1)), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Check()
			if (err != nil) != tc.wantErr {
				t.Errorf("Check() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultFees(t *testing.T) {
	if got := DefaultFees().Order; !got.Equal(EUR(1)) {
		t.Errorf("DefaultFees().Order = %s, want 1", got)
	}
	// The zero value means free trading.
	var free Fees
	if !free.Order.IsZero() {
		t.Errorf("zero Fees order = %s, want 0", free.Order)
	}
}
