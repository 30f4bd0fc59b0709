package chart

import (
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// NiceAxisBounds expands [min,max] by a small margin and rounds outwards to a tenth of the
// span's order of magnitude.
func NiceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span))) / 10
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// NumericTicks generates about n ticks spanning [min,max] on a 1, 2, 2.5, 5 × 10^k step.
func NumericTicks(min, max float64, n int, label func(float64) string) []gochart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var ticks []gochart.Tick
	for v := start; v <= end+bestStep/2; v += bestStep {
		v = math.Round(v*1e6) / 1e6
		ticks = append(ticks, gochart.Tick{Value: v, Label: label(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// pickMonthStep chooses a calendar step that keeps about a dozen labels on the axis.
func pickMonthStep(span time.Duration) int {
	const month = 30 * 24 * time.Hour
	switch {
	case span <= 6*month:
		return 1
	case span <= 18*month:
		return 2
	case span <= 36*month:
		return 3
	default:
		return 6
	}
}

// MonthTicks returns ticks at the first of every step-th month inside [minT, maxT].
func MonthTicks(minT, maxT time.Time, labelFmt string) []gochart.Tick {
	if !maxT.After(minT) {
		return []gochart.Tick{{Value: gochart.TimeToFloat64(minT), Label: minT.Format(labelFmt)}}
	}
	step := pickMonthStep(maxT.Sub(minT))
	t := time.Date(minT.Year(), minT.Month(), 1, 0, 0, 0, 0, minT.Location())
	if t.Before(minT) {
		t = t.AddDate(0, 1, 0)
	}
	// align to the step so labels land on Jan/Jul etc.
	for (int(t.Month())-1)%step != 0 {
		t = t.AddDate(0, 1, 0)
	}
	var ticks []gochart.Tick
	for ; !t.After(maxT); t = t.AddDate(0, step, 0) {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(t), Label: t.Format(labelFmt)})
		if len(ticks) > 24 {
			break
		}
	}
	return ticks
}
