package folio

import (
	"testing"
	"time"
)

// twoLots returns the open lots of a standard two-purchase position:
// 10 shares at 150 EUR plus 1 EUR fee, then 5 shares at 160 EUR plus 1 EUR fee.
func twoLots(t *testing.T) lots {
	t.Helper()

	b1 := NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(1))
	b1.ID = 1
	b2 := NewBuy(NewDate(2025, time.February, 15), "AIR", "Airbus", Q(5), EUR(160), EUR(1))
	b2.ID = 2
	return buildLots([]Transaction{b1, b2})
}

func TestLots_FifoCostOfSelling(t *testing.T) {
	open := twoLots(t)

	testCases := []struct {
		name     string
		quantity Quantity
		wantCost Money
	}{
		{
			name:     "Whole first lot",
			quantity: Q(10),
			wantCost: EUR(1501), // 10 * 150 + 1
		},
		{
			name:     "Across both lots",
			quantity: Q(12),
			wantCost: EUR(1821.4), // 1501 + 2/5 * 801
		},
		{
			name:     "Partial first lot keeps cost per share",
			quantity: Q(4),
			wantCost: EUR(600.4), // 4/10 * 1501
		},
		{
			name:     "Everything",
			quantity: Q(15),
			wantCost: EUR(2302), // 1501 + 801
		},
		{
			name:     "Over-sell floors at the whole queue",
			quantity: Q(20),
			wantCost: EUR(2302),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := open.fifoCostOfSelling(tc.quantity)
			if !got.Equal(tc.wantCost) {
				t.Errorf("fifoCostOfSelling(%s) = %s, want %s", tc.quantity, got, tc.wantCost)
			}
		})
	}
}

func TestLots_SellPreservesCostPerShare(t *testing.T) {
	open := twoLots(t)

	remaining := open.sell(Q(12))

	if got := remaining.totalQuantity(); !got.Equal(Q(3)) {
		t.Fatalf("totalQuantity() = %s, want 3", got)
	}
	// 3 shares left of the second lot, at 801/5 = 160.20 each.
	if got := remaining.totalCost(); !got.Equal(EUR(480.6)) {
		t.Errorf("totalCost() = %s, want 480.6", got)
	}
	if got := remaining[0].CostPerShare(); !got.Equal(EUR(160.2)) {
		t.Errorf("CostPerShare() = %s, want 160.2", got)
	}
	if remaining[0].Buy != 2 {
		t.Errorf("remaining lot originates from buy %d, want 2", remaining[0].Buy)
	}
}

func TestLots_SellConservation(t *testing.T) {
	open := twoLots(t)

	// Selling in two steps leaves the same queue as selling once.
	twice := open.sell(Q(7)).sell(Q(5))
	once := open.sell(Q(12))

	if !twice.totalQuantity().Equal(once.totalQuantity()) {
		t.Errorf("quantity after split sale = %s, want %s", twice.totalQuantity(), once.totalQuantity())
	}
	if !twice.totalCost().Equal(once.totalCost()) {
		t.Errorf("cost after split sale = %s, want %s", twice.totalCost(), once.totalCost())
	}

	// Consumed cost plus remaining cost always equals the original cost.
	consumed := open.fifoCostOfSelling(Q(7))
	remaining := open.sell(Q(7))
	if total := consumed.Add(remaining.totalCost()); !total.Equal(open.totalCost()) {
		t.Errorf("consumed + remaining = %s, want %s", total, open.totalCost())
	}
}

func TestLots_FifoConsumed(t *testing.T) {
	open := twoLots(t)

	testCases := []struct {
		name     string
		quantity Quantity
		want     []int64
	}{
		{name: "First lot only", quantity: Q(10), want: []int64{1}},
		{name: "Both lots", quantity: Q(12), want: []int64{1, 2}},
		{name: "Partial first", quantity: Q(3), want: []int64{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := open.fifoConsumed(tc.quantity)
			if len(got) != len(tc.want) {
				t.Fatalf("fifoConsumed(%s) = %v, want %v", tc.quantity, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("fifoConsumed(%s) = %v, want %v", tc.quantity, got, tc.want)
				}
			}
		})
	}
}

func TestBuildLots_ReplaysSells(t *testing.T) {
	b1 := NewBuy(NewDate(2025, time.January, 10), "AIR", "Airbus", Q(10), EUR(150), EUR(1))
	b1.ID = 1
	s1 := NewSell(NewDate(2025, time.March, 1), "AIR", "Airbus", Q(6), EUR(170), EUR(1))
	s1.ID = 2
	b2 := NewBuy(NewDate(2025, time.April, 1), "AIR", "Airbus", Q(5), EUR(160), EUR(1))
	b2.ID = 3

	open := buildLots([]Transaction{b1, s1, b2})

	if got := open.totalQuantity(); !got.Equal(Q(9)) {
		t.Fatalf("totalQuantity() = %s, want 9", got)
	}
	// 4 shares left of the first lot (4/10 * 1501 = 600.40) plus the whole second buy.
	if got := open.totalCost(); !got.Equal(EUR(1401.4)) {
		t.Errorf("totalCost() = %s, want 1401.4", got)
	}
}
