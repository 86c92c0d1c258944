package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// orderCmd is a specialized struct to decode a buy or sell line. Money fields
// travel as a bare decimal plus one shared currency field.
type orderCmd struct {
	ID       int64           `json:"id"`
	Date     Date            `json:"date"`
	Ticker   string          `json:"ticker"`
	Company  string          `json:"company"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
	Note     string          `json:"note"`
}

func (c orderCmd) currency() string {
	if c.Currency == "" {
		return money.EUR
	}
	return c.Currency
}

// dividendCmd is a specialized struct to decode a dividend line.
type dividendCmd struct {
	ID            int64           `json:"id"`
	Date          Date            `json:"date"`
	Ticker        string          `json:"ticker"`
	Company       string          `json:"company"`
	PerShare      decimal.Decimal `json:"perShare"`
	Currency      string          `json:"currency"`
	PaymentDate   Date            `json:"paymentDate"`
	QuantityOwned Quantity        `json:"quantityOwned"`
	Tax           decimal.Decimal `json:"tax"`
	Status        string          `json:"status"`
	Note          string          `json:"note"`
}

func (c dividendCmd) currency() string {
	if c.Currency == "" {
		return money.EUR
	}
	return c.Currency
}

// DecodeBooks decodes a stream of JSONL ledger data into the transaction
// ledger and the dividend book. Each line carries a "command" field naming
// its kind; derived amounts (total cost, gross, net) are recomputed, never
// read back from the file.
func DecodeBooks(r io.Reader) (*Ledger, *DividendBook, error) {
	ledger := NewLedger()
	dividends := NewDividendBook()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var identifier struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, nil, fmt.Errorf("could not identify command on line %d: %w", line, err)
		}

		switch identifier.Command {
		case "buy", "sell":
			var temp orderCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, nil, fmt.Errorf("invalid %s on line %d: %w", identifier.Command, line, err)
			}
			cur := temp.currency()
			var tx Transaction
			if identifier.Command == "buy" {
				tx = NewBuy(temp.Date, temp.Ticker, temp.Company, temp.Quantity, M(temp.Price, cur), M(temp.Fee, cur))
			} else {
				tx = NewSell(temp.Date, temp.Ticker, temp.Company, temp.Quantity, M(temp.Price, cur), M(temp.Fee, cur))
			}
			tx.ID = temp.ID
			tx.Note = temp.Note
			ledger.Append(tx)

		case "dividend":
			var temp dividendCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, nil, fmt.Errorf("invalid dividend on line %d: %w", line, err)
			}
			status, err := ParseDividendStatus(temp.Status)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid dividend on line %d: %w", line, err)
			}
			cur := temp.currency()
			d := NewDividend(temp.Ticker, temp.Company, M(temp.PerShare, cur), temp.Date, temp.PaymentDate, temp.QuantityOwned, M(temp.Tax, cur), status)
			d.ID = temp.ID
			d.Note = temp.Note
			dividends.Append(d)

		default:
			return nil, nil, fmt.Errorf("unknown command %q on line %d", identifier.Command, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, dividends, nil
}

// EncodeLine marshals one record to JSON and writes it followed by a newline.
func EncodeLine(w io.Writer, v any) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeBooks persists the ledger and the dividend book to an io.Writer in
// JSONL format, transactions first in date order, then dividends by ex-date.
// Re-encoding a file produces the canonical form.
func EncodeBooks(w io.Writer, ledger *Ledger, dividends *DividendBook) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeLine(w, tx); err != nil {
			return err
		}
	}

	divs := dividends.All()
	sort.SliceStable(divs, func(i, j int) bool {
		if divs[i].ExDate != divs[j].ExDate {
			return divs[i].ExDate.Before(divs[j].ExDate)
		}
		return divs[i].ID < divs[j].ID
	})
	for _, d := range divs {
		if err := EncodeLine(w, d); err != nil {
			return err
		}
	}
	return nil
}
