package folio

import (
	"testing"
	"time"
)

func TestNewDividend_DerivesAmounts(t *testing.T) {
	d := NewDividend("AIR", "Airbus", EUR(1.8), NewDate(2025, time.April, 15), NewDate(2025, time.April, 30), Q(10), EUR(2), Received)

	if !d.Gross.Equal(EUR(18)) { // 1.80 * 10
		t.Errorf("Gross = %s, want 18", d.Gross)
	}
	if !d.Net.Equal(EUR(16)) { // 18 - 2
		t.Errorf("Net = %s, want 16", d.Net)
	}
}

func TestDividendBook_YearSummary(t *testing.T) {
	book := NewDividendBook()
	book.Append(
		// Paid in 2025.
		NewDividend("AIR", "Airbus", EUR(1.8), NewDate(2025, time.April, 15), NewDate(2025, time.April, 30), Q(10), EUR(0), Received),
		// Ex-date in December 2024, paid in January 2025: taxable in 2025.
		NewDividend("TTE", "TotalEnergies", EUR(0.79), NewDate(2024, time.December, 20), NewDate(2025, time.January, 5), Q(20), EUR(1), Received),
		// No payment date yet: keyed on the ex-date.
		NewDividend("MC", "LVMH", EUR(6.5), NewDate(2025, time.December, 1), Date{}, Q(2), EUR(0), Planned),
		// Another year entirely.
		NewDividend("AIR", "Airbus", EUR(1.6), NewDate(2024, time.April, 15), NewDate(2024, time.April, 30), Q(10), EUR(0), Received),
	)

	s := book.YearSummary(2025)

	if s.Year != 2025 {
		t.Fatalf("Year = %d, want 2025", s.Year)
	}
	if !s.Gross.Equal(EUR(33.8)) { // 18 + 15.80
		t.Errorf("Gross = %s, want 33.80", s.Gross)
	}
	if !s.Tax.Equal(EUR(1)) {
		t.Errorf("Tax = %s, want 1", s.Tax)
	}
	if !s.Net.Equal(EUR(32.8)) {
		t.Errorf("Net = %s, want 32.80", s.Net)
	}
	if s.ReceivedCount != 2 {
		t.Errorf("ReceivedCount = %d, want 2", s.ReceivedCount)
	}
	if !s.PlannedGross.Equal(EUR(13)) { // 6.50 * 2
		t.Errorf("PlannedGross = %s, want 13", s.PlannedGross)
	}
}

func TestDividendBook_Year(t *testing.T) {
	book := NewDividendBook()
	book.Append(
		NewDividend("MC", "LVMH", EUR(6.5), NewDate(2025, time.December, 1), Date{}, Q(2), EUR(0), Planned),
		// Ex-date in December 2024, paid in January 2025: taxable in 2025.
		NewDividend("TTE", "TotalEnergies", EUR(0.79), NewDate(2024, time.December, 20), NewDate(2025, time.January, 5), Q(20), EUR(1), Received),
		NewDividend("AIR", "Airbus", EUR(1.6), NewDate(2024, time.April, 15), NewDate(2024, time.April, 30), Q(10), EUR(0), Received),
	)

	divs := book.Year(2025)
	if len(divs) != 2 {
		t.Fatalf("Year(2025) returned %d entries, want 2", len(divs))
	}
	// Sorted by taxable date: the January payment before the December ex-date.
	if divs[0].Ticker != "TTE" || divs[1].Ticker != "MC" {
		t.Errorf("Year(2025) order = [%s %s], want [TTE MC]", divs[0].Ticker, divs[1].Ticker)
	}

	if got := book.Year(2023); len(got) != 0 {
		t.Errorf("Year(2023) returned %d entries, want 0", len(got))
	}
}

func TestDividendBook_AnnualGross(t *testing.T) {
	book := NewDividendBook()
	book.Append(
		NewDividend("AIR", "Airbus", EUR(0.9), NewDate(2025, time.April, 15), NewDate(2025, time.April, 30), Q(10), EUR(0), Received),
		NewDividend("AIR", "Airbus", EUR(0.9), NewDate(2025, time.October, 15), NewDate(2025, time.October, 30), Q(10), EUR(0), Received),
		NewDividend("TTE", "TotalEnergies", EUR(0.79), NewDate(2025, time.March, 20), NewDate(2025, time.April, 1), Q(20), EUR(0), Received),
	)

	if got := book.AnnualGross("AIR", 2025); !got.Equal(EUR(18)) {
		t.Errorf("AnnualGross(AIR, 2025) = %s, want 18", got)
	}
	if got := book.AnnualGross("AIR", 2024); !got.IsZero() {
		t.Errorf("AnnualGross(AIR, 2024) = %s, want 0", got)
	}
}

func TestDividendBook_AppendAssignsIdentities(t *testing.T) {
	book := NewDividendBook()
	book.Append(
		NewDividend("AIR", "Airbus", EUR(1.8), NewDate(2025, time.April, 15), Date{}, Q(10), EUR(0), Received),
		NewDividend("TTE", "TotalEnergies", EUR(0.79), NewDate(2025, time.March, 20), Date{}, Q(20), EUR(0), Received),
	)

	all := book.All()
	if all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("ids = [%d %d], want [1 2]", all[0].ID, all[1].ID)
	}
}
