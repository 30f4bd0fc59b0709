package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	png "image/png"
	"io"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/StockListViewer/cmd/stockviewer/uihelpers"
	"github.com/iafilius/StockListViewer/src/chart"
	"github.com/iafilius/StockListViewer/src/loader"
	"github.com/iafilius/StockListViewer/src/locale"
	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/quotes"
	"github.com/iafilius/StockListViewer/src/series"
	"github.com/iafilius/StockListViewer/src/types"
)

// listingSource is the part of the quote client the window needs besides the loader.
type listingSource interface {
	FetchListing(ctx context.Context) (string, error)
}

// uiState is everything the main window owns. It is only touched on the fyne goroutine;
// the loader goroutine reaches it through post.
type uiState struct {
	app    fyne.App
	window fyne.Window
	bundle *locale.Bundle

	listing listingSource
	loader  *loader.Loader

	model loader.TableModel
	// post runs fn on the fyne goroutine; fyne.Do outside tests
	post func(fn func())
	// gen increments on every reload so updates from a superseded load are dropped
	gen    int
	cancel context.CancelFunc

	// widgets
	table        *widget.Table
	loadingLabel *widget.Label
	statusLabel  *widget.Label
	chartHolder  *fyne.Container
	chart        *chartSlot

	// current chart
	series   *types.PriceSeries
	chartImg image.Image
}

func newUIState(a fyne.App, b *locale.Bundle, client *quotes.Client, ld *loader.Loader) *uiState {
	return &uiState{app: a, bundle: b, listing: client, loader: ld, post: fyne.Do}
}

// buildMainWindow creates every widget once and starts the first listing load.
func buildMainWindow(st *uiState, fullScreen bool) fyne.Window {
	b := st.bundle
	w := st.app.NewWindow(b.WindowTitle)
	st.window = w
	w.Resize(fyne.NewSize(1280, 900))
	w.SetFullScreen(fullScreen)

	st.table = widget.NewTable(
		// size provider: 1 header row + data rows; 8 columns
		func() (int, int) { return st.model.Len() + 1, len(b.Headers) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(b.Headers[id.Col])
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			row, ok := st.model.Row(id.Row - 1)
			if !ok {
				lbl.SetText("")
				return
			}
			if id.Col == 7 {
				lbl.SetText(b.Price(row.Quote))
				return
			}
			lbl.SetText(uihelpers.TruncateText(row.Cells()[id.Col], 48))
		},
	)
	st.table.OnSelected = func(id widget.TableCellID) {
		st.selectRow(uihelpers.RowIndexFromCell(id.Row, st.model.Len()))
		// fyne ignores Select on the selected cell; clear it so the next click on the row fires again
		st.table.Unselect(id)
	}
	applyColumnWidths(st, 1280)

	st.loadingLabel = widget.NewLabel(b.Loading)
	st.loadingLabel.Hide()
	st.statusLabel = widget.NewLabel("")

	st.chartHolder = container.NewStack()
	st.chart = newChartSlot(st.chartHolder)
	st.showChart(chart.Placeholder(chart.DefaultWidth, chart.DefaultHeight, b.ChartHint))

	top := container.NewHBox(
		widget.NewButton(b.Reload, func() { st.reload() }),
		widget.NewButton(b.SaveChart, func() { exportChartPNG(st) }),
		st.loadingLabel,
		st.statusLabel,
	)
	chartRow := container.NewHBox(st.chartHolder)
	split := container.NewVSplit(st.table, container.NewVScroll(chartRow))
	split.SetOffset(0.55)
	w.SetContent(container.NewBorder(top, nil, nil, nil, split))

	watchResize(st)
	st.reload()
	return w
}

func applyColumnWidths(st *uiState, winW float32) {
	for i, cw := range uihelpers.ComputeTableColumnWidths(winW) {
		st.table.SetColumnWidth(i, float32(cw))
	}
}

// reload fetches the listing and streams quotes into the table. A previous load still in
// flight is cancelled and its late updates are ignored.
func (st *uiState) reload() {
	if st.cancel != nil {
		st.cancel()
	}
	st.gen++
	gen := st.gen
	ctx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel
	st.statusLabel.SetText("")
	st.loadingLabel.Show()

	go func() {
		raw, err := st.listing.FetchListing(ctx)
		var updates <-chan loader.Update
		if err == nil {
			updates, err = st.loader.Load(ctx, raw)
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Errorf("listing load failed: %v", err)
			st.post(func() { st.listingFailed(gen) })
			return
		}
		for u := range updates {
			u := u
			st.post(func() { st.apply(gen, u) })
		}
	}()
}

// apply folds one loader update into the model and widgets. Runs on the fyne goroutine.
func (st *uiState) apply(gen int, u loader.Update) {
	if gen != st.gen {
		return
	}
	st.model.Apply(u)
	switch u.Kind {
	case loader.UpdateReset:
		st.table.UnselectAll()
		st.table.Refresh()
	case loader.UpdateLoading:
		st.loadingLabel.Show()
	case loader.UpdateRow:
		st.table.Refresh()
	case loader.UpdateDone:
		st.loadingLabel.Hide()
		st.statusLabel.SetText(st.bundle.Loaded(st.model.Len(), u.Skipped))
	case loader.UpdateAborted:
		// rows fetched so far stay; the loading label stays up as the visible marker
		logging.Warnf("load stopped: %v", u.Err)
		st.statusLabel.SetText(st.bundle.AbortedAt(u.Index, u.Row.Symbol))
	}
}

// listingFailed reports a failed listing fetch or parse. The cause is already logged.
func (st *uiState) listingFailed(gen int) {
	if gen != st.gen {
		return
	}
	st.loadingLabel.Hide()
	st.statusLabel.SetText(st.bundle.LoadFailed)
	dialog.ShowError(errors.New(st.bundle.LoadFailed), st.window)
}

// selectRow regenerates the synthetic series for row i and renders it. Re-selecting the
// same row produces new values.
func (st *uiState) selectRow(i int) {
	row, ok := st.model.Row(i)
	if !ok {
		return
	}
	s := series.Generate(row.Symbol, time.Now(), nil)
	st.series = &s
	st.redrawChart()
}

// redrawChart renders the current series at the current window size.
func (st *uiState) redrawChart() {
	if st.series == nil {
		return
	}
	defer logging.TimeTrack(time.Now(), "chart "+st.series.Symbol)
	w, h := uihelpers.ComputeChartDimensions(int(chartWidthHint(st)))
	st.showChart(chart.RenderPriceChart(*st.series, st.bundle, w, h))
}

func chartWidthHint(st *uiState) float32 {
	if st.window == nil || st.window.Canvas() == nil {
		return chart.DefaultWidth
	}
	return st.window.Canvas().Size().Width * 0.6
}

// showChart wraps img in a fresh canvas object and swaps it into the chart slot.
func (st *uiState) showChart(img image.Image) {
	st.chartImg = img
	obj := canvas.NewImageFromImage(img)
	obj.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	obj.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	st.chart.Replace(obj)
	st.chartHolder.Refresh()
}

// watchResize re-lays the table columns and redraws the chart when the window width
// changes. Polls because fyne has no resize callback on windows.
func watchResize(st *uiState) {
	w := st.window
	if w.Canvas() == nil {
		return
	}
	prevW := int(w.Canvas().Size().Width)
	done := make(chan struct{})
	w.SetOnClosed(func() {
		if st.cancel != nil {
			st.cancel()
		}
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					st.post(func() {
						applyColumnWidths(st, float32(curW))
						st.redrawChart()
					})
				}
			}
		}
	}()
}

// exportChartPNG saves the displayed chart image.
func exportChartPNG(st *uiState) {
	if st.series == nil || st.chartImg == nil {
		dialog.ShowInformation(st.bundle.SaveChart, st.bundle.NoChart, st.window)
		return
	}
	img := st.chartImg
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		if err := writeChartPNG(wc, img); err != nil {
			logging.Errorf("save chart %s: %v", wc.URI(), err)
			dialog.ShowError(errors.New(st.bundle.SaveFailed), st.window)
		}
	}, st.window)
	fs.SetFileName(st.series.Symbol + ".png")
	fs.Show()
}

// writeChartPNG encodes img into wc and closes it. A failed close is reported like a
// failed encode, since that is where buffered writers flush.
func writeChartPNG(wc io.WriteCloser, img image.Image) error {
	if err := png.Encode(wc, img); err != nil {
		wc.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
