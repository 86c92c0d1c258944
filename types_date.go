package folio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical ISO-8601 day format used on the wire.
const DateFormat = "2006-01-02"

// readDateFormat additionally accepts single-digit month and day on input.
const readDateFormat = "2006-1-2"

// Date is a calendar day. Transactions and dividends are ordered and
// year-filtered at day granularity, so no time of day is carried.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the civil year, the granularity of every tax report.
func (d Date) Year() int { return d.y }

// String formats the date as ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time pins the day at midnight UTC so comparisons are unambiguous.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether d falls strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d falls strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// ParseDate parses a day from a string. It is lenient and accepts forms like
// "2025-7-1" in addition to the canonical "2025-07-01".
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, strings.TrimSpace(str))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in ledger file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
