// Package chart renders price series to images with go-chart.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/StockListViewer/src/locale"
	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/types"
)

// Default canvas size of the chart area.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	gridColor = drawing.ColorFromHex("d9d9d9")
)

// lineStyle draws markers joined by a line.
func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
		DotColor:    col,
		DotWidth:    3,
	}
}

func gridStyle() gochart.Style {
	return gochart.Style{StrokeColor: gridColor, StrokeWidth: 1}
}

// Build assembles the go-chart definition for s. Exposed so tests can inspect axes and
// series without decoding pixels.
func Build(s types.PriceSeries, b *locale.Bundle, w, h int) (gochart.Chart, error) {
	if len(s.Points) < 2 {
		return gochart.Chart{}, fmt.Errorf("series %q: need at least 2 points, have %d", s.Symbol, len(s.Points))
	}
	dates := s.Dates()
	closes := s.Closes()
	minY, maxY := closes[0], closes[0]
	for _, v := range closes[1:] {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	yMin, yMax := NiceAxisBounds(minY, maxY)
	yTicks := NumericTicks(yMin, yMax, 6, func(v float64) string { return b.Number(v, tickDecimals(v)) })
	if len(yTicks) >= 2 {
		// widen the range to the outer ticks so none is drawn off the plot
		yMin, yMax = yTicks[0].Value, yTicks[len(yTicks)-1].Value
	}
	xTicks := MonthTicks(dates[0], dates[len(dates)-1], "2006-01")

	xStyle := gochart.Style{TextRotationDegrees: 45}
	return gochart.Chart{
		Title:      b.Title(s.Symbol),
		Width:      w,
		Height:     h,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 16, Right: 20, Bottom: 56}},
		XAxis: gochart.XAxis{
			Name:           b.DateAxis,
			Style:          xStyle,
			Ticks:          xTicks,
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(dates[0]), Max: gochart.TimeToFloat64(dates[len(dates)-1])},
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxis: gochart.YAxis{
			Name:           b.PriceAxis,
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:          yTicks,
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: s.Symbol, XValues: dates, YValues: closes, Style: lineStyle(lineColor)},
		},
	}, nil
}

// RenderPriceChart draws s as a w×h image. Render failures are logged and yield a blank
// image so the caller always has something to show.
func RenderPriceChart(s types.PriceSeries, b *locale.Bundle, w, h int) image.Image {
	ch, err := Build(s, b, w, h)
	if err != nil {
		logging.Warnf("chart %s: %v; showing blank fallback", s.Symbol, err)
		return Blank(w, h)
	}
	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		logging.Warnf("chart %s render error: %v; showing blank fallback", s.Symbol, err)
		return Blank(w, h)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("chart %s decode error: %v; showing blank fallback", s.Symbol, err)
		return Blank(w, h)
	}
	return img
}

// Placeholder is a blank canvas carrying a short hint, shown before any row is selected.
func Placeholder(w, h int, text string) image.Image {
	return DrawHint(Blank(w, h), text)
}

// Blank returns a plain light image of the given size.
func Blank(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)
	return img
}

// DrawHint draws text onto a copy of img near the bottom-left corner.
func DrawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 8
	bg := image.NewUniform(color.RGBA{R: 40, G: 40, B: 40, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func tickDecimals(v float64) int {
	if v == float64(int64(v)) {
		return 0
	}
	return 1
}
