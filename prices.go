package folio

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// PriceSource provides the latest known price per ticker. A missing price is
// not an error: valuation falls back to cost basis.
type PriceSource interface {
	Price(ticker string) (Money, bool)
}

// PriceTable is an in-memory PriceSource.
type PriceTable struct {
	prices map[string]Money
}

func NewPriceTable() *PriceTable {
	return &PriceTable{prices: make(map[string]Money)}
}

func (t *PriceTable) Set(ticker string, price Money) { t.prices[ticker] = price }

func (t *PriceTable) Price(ticker string) (Money, bool) {
	p, ok := t.prices[ticker]
	return p, ok
}

func (t *PriceTable) Len() int { return len(t.prices) }

// DecodePriceDoc decodes an arbitrary JSON document, typically a quote export
// from a broker, for use with ExtractPrices.
func DecodePriceDoc(r io.Reader) (any, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode price document: %w", err)
	}
	return doc, nil
}

// ExtractPrices pulls one quote per ticker out of a decoded JSON document.
// pathTemplate is a jsonpath with a single %q verb for the ticker, e.g.
// "$.quotes[%q].last". Tickers whose path or value cannot be read are logged
// and skipped: a partial table is better than none.
func ExtractPrices(doc any, pathTemplate, currency string, tickers iter.Seq[string]) *PriceTable {
	table := NewPriceTable()
	for ticker := range tickers {
		path := fmt.Sprintf(pathTemplate, ticker)
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			log.Printf("no price for %q: %v", ticker, err)
			continue
		}
		// jsonpath is never clear about whether it returns a list of 1 answer,
		// or a single answer: keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		val, err := jsonNumber(jval)
		if err != nil {
			log.Printf("cannot read price for %q: %v", ticker, err)
			continue
		}
		if val == 0 {
			log.Printf("empty quote for %q, skipping", ticker)
			continue
		}
		table.Set(ticker, M(val, currency))
	}
	return table
}

// jsonNumber coerces a decoded JSON value into a float. Some quote feeds
// return numbers as localized strings.
func jsonNumber(jval any) (float64, error) {
	if val, ok := jval.(float64); ok {
		return val, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("neither a float nor a string: %v", jval)
	}
	sval = strings.ReplaceAll(sval, ",", ".")
	sval = strings.ReplaceAll(sval, " ", "")
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", sval, err)
	}
	return val, nil
}
