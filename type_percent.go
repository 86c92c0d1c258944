package folio

import "fmt"

// Percent is a display-side percentage (gain percent, effective tax rate,
// position weight). Tax rates that enter the arithmetic stay decimal; Percent
// only ever comes out of a division for reporting.
type Percent float64

// Equal compares two percentages within display precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString renders with an explicit sign, or "-" for a flat zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
