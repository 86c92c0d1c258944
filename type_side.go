package folio

import "fmt"

// Side identifies the direction of a transaction.
type Side int

const (
	// Buy adds shares to the portfolio; its total cost includes the order fee.
	Buy Side = iota
	// Sell removes shares from the portfolio; the order fee reduces its proceeds.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side.
func ParseSide(str string) (Side, error) {
	switch str {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction side: %q", str)
	}
}

// MarshalJSON implements the json.Marshaler interface for Side.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Side.
func (s *Side) UnmarshalJSON(b []byte) error {
	str := string(b)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	side, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = side
	return nil
}
