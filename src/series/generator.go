// Package series synthesizes price histories for the chart. There is no historical data
// source; values are uniform random prices on a fixed date grid.
package series

import (
	"math/rand"
	"time"

	"github.com/iafilius/StockListViewer/src/types"
)

const (
	// Points is the fixed number of samples per series.
	Points = 50
	// Years is the span covered, ending today.
	Years = 5

	MinPrice = 100.0
	MaxPrice = 200.0
)

// Span returns the [start, end] date range for a series generated at now: end is now's
// local midnight, start is the same calendar day Years earlier.
func Span(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return end.AddDate(-Years, 0, 0), end
}

// Generate builds a Points-long series for symbol. Dates are evenly spaced across Span(now)
// with both ends included; closes are drawn from [MinPrice, MaxPrice). A nil rng uses the
// auto-seeded global source.
func Generate(symbol string, now time.Time, rng *rand.Rand) types.PriceSeries {
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	start, end := Span(now)
	step := end.Sub(start) / time.Duration(Points-1)
	pts := make([]types.PricePoint, Points)
	for i := range pts {
		d := start.Add(step * time.Duration(i))
		if i == Points-1 {
			d = end
		}
		pts[i] = types.PricePoint{Date: d, Close: MinPrice + draw()*(MaxPrice-MinPrice)}
	}
	return types.PriceSeries{Symbol: symbol, Points: pts}
}
