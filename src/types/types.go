// Package types holds the data model shared by the viewer, the loader and the reader CLI.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unavailable is shown in place of a price the API did not return.
const Unavailable = "N/A"

// QuoteStatus classifies the outcome of a single quote fetch.
type QuoteStatus int

const (
	// QuotePending means no fetch has completed yet.
	QuotePending QuoteStatus = iota
	// QuotePriced means the API returned a price.
	QuotePriced
	// QuoteUnavailable means the response parsed but carried no price field.
	QuoteUnavailable
	// QuoteFailed means the request or its decoding failed.
	QuoteFailed
)

func (s QuoteStatus) String() string {
	switch s {
	case QuotePriced:
		return "priced"
	case QuoteUnavailable:
		return "unavailable"
	case QuoteFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Quote is one symbol's latest price snapshot.
type Quote struct {
	Symbol string
	Status QuoteStatus
	// Price is the text as returned by the API, or Unavailable.
	Price string
	// Value is Price parsed; zero unless Status == QuotePriced.
	Value decimal.Decimal
	Err   error
}

// Display returns the text shown in the price column.
func (q Quote) Display() string {
	switch q.Status {
	case QuotePriced:
		return q.Price
	case QuoteUnavailable, QuoteFailed:
		return Unavailable
	default:
		return ""
	}
}

// TickerRow is one record of the listing plus its fetched quote.
type TickerRow struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	AssetType     string `json:"assetType"`
	IPODate       string `json:"ipoDate"`
	DelistingDate string `json:"delistingDate"`
	Status        string `json:"status"`
	Quote         Quote  `json:"-"`
}

// Cells returns the eight display columns in table order.
func (r TickerRow) Cells() [8]string {
	return [8]string{r.Symbol, r.Name, r.Exchange, r.AssetType, r.IPODate, r.DelistingDate, r.Status, r.Quote.Display()}
}

// PricePoint is a single (date, close) sample.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ordered price history for one symbol.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Dates and Closes split the series into the parallel slices charting expects.
func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}
