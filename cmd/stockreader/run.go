package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/robfig/cron/v3"

	"github.com/iafilius/StockListViewer/src/chart"
	"github.com/iafilius/StockListViewer/src/export"
	"github.com/iafilius/StockListViewer/src/loader"
	"github.com/iafilius/StockListViewer/src/locale"
	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/quotes"
	"github.com/iafilius/StockListViewer/src/series"
	"github.com/iafilius/StockListViewer/src/types"
)

// job is one headless pass: fetch, load, print, then optionally export and chart.
type job struct {
	Client *quotes.Client
	Loader *loader.Loader
	Bundle *locale.Bundle

	// ExportPath is a directory or file stem; the writer's extension is appended when missing.
	ExportPath string
	Format     string
	// ChartPath and ChartSymbol select an optional PNG; an empty symbol charts the first row.
	ChartPath   string
	ChartSymbol string

	Out io.Writer
	Now func() time.Time
}

// newScheduler registers pass on spec (seconds field first). A pass still running when the
// next tick fires makes that tick a no-op, so passes never share stdout or the export file.
func newScheduler(spec string, pass func()) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, pass); err != nil {
		return nil, fmt.Errorf("register schedule %q: %w", spec, err)
	}
	return c, nil
}

// result summarises a pass for the caller and tests.
type result struct {
	Model      loader.TableModel
	ExportFile string
	ChartFile  string
}

func (j *job) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// runOnce performs one pass. An aborted load still prints and exports the rows fetched
// before the failure, then reports the abort as the error.
func (j *job) runOnce(ctx context.Context) (*result, error) {
	defer logging.TimeTrack(time.Now(), "reader pass")
	raw, err := j.Client.FetchListing(ctx)
	if err != nil {
		return nil, err
	}
	updates, err := j.Loader.Load(ctx, raw)
	if err != nil {
		return nil, err
	}
	res := &result{}
	res.Model.Drain(updates)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	printTable(j.Out, j.Bundle, res.Model.Rows)
	if res.Model.Done {
		fmt.Fprintln(j.Out, j.Bundle.Loaded(res.Model.Len(), res.Model.Skipped))
	}

	if j.ExportPath != "" {
		f, err := j.export(res.Model.Rows)
		if err != nil {
			return res, err
		}
		res.ExportFile = f
	}
	if j.ChartPath != "" {
		f, err := j.chart(res.Model.Rows)
		if err != nil {
			return res, err
		}
		res.ChartFile = f
	}
	return res, res.Model.Err
}

func (j *job) export(rows []types.TickerRow) (string, error) {
	w, err := export.WriterFor(j.Format)
	if err != nil {
		return "", err
	}
	snap := export.NewSnapshot(rows, j.now())
	path := exportTarget(j.ExportPath, w.Extension(), snap.TakenAt)
	if err := w.Write(snap, path); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	logging.Infof("exported %d rows to %s", len(rows), path)
	return path, nil
}

// exportTarget resolves the output file. A directory gets a timestamped file name; sqlite
// targets keep one file so snapshots accumulate.
func exportTarget(base, ext string, at time.Time) string {
	if fi, err := os.Stat(base); err == nil && fi.IsDir() {
		name := "listing_" + at.UTC().Format("20060102T150405Z")
		if ext == "db" {
			name = "listing"
		}
		return filepath.Join(base, name+"."+ext)
	}
	if strings.EqualFold(filepath.Ext(base), "."+ext) {
		return base
	}
	return base + "." + ext
}

func (j *job) chart(rows []types.TickerRow) (string, error) {
	sym := j.ChartSymbol
	if sym == "" {
		if len(rows) == 0 {
			return "", fmt.Errorf("chart: no rows loaded")
		}
		sym = rows[0].Symbol
	}
	s := series.Generate(sym, j.now(), nil)
	img := chart.RenderPriceChart(s, j.Bundle, chart.DefaultWidth, chart.DefaultHeight)
	f, err := os.Create(j.ChartPath)
	if err != nil {
		return "", fmt.Errorf("chart: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("chart: encode: %w", err)
	}
	logging.Infof("chart for %s written to %s", sym, j.ChartPath)
	return j.ChartPath, nil
}

// printTable writes rows under the localized headers.
func printTable(out io.Writer, b *locale.Bundle, rows []types.TickerRow) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	hdr := make(table.Row, len(b.Headers))
	for i, h := range b.Headers {
		hdr[i] = h
	}
	t.AppendHeader(hdr)
	for _, r := range rows {
		c := r.Cells()
		t.AppendRow(table.Row{c[0], c[1], c[2], c[3], c[4], c[5], c[6], b.Price(r.Quote)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 8, Align: text.AlignRight},
	})
	t.Render()
}
