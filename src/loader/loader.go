// Package loader turns a raw listing into table rows. Quotes are fetched sequentially on a
// single background goroutine and delivered as Updates over a channel; the consumer owns
// all display state and applies updates on its own goroutine.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/quotes"
	"github.com/iafilius/StockListViewer/src/types"
)

// ErrAborted wraps the quote error that stopped a batch under PolicyAbort.
var ErrAborted = errors.New("listing load aborted")

// Policy decides what a failed quote does to the rest of the batch.
type Policy int

const (
	// PolicyAbort stops at the first failed quote. Rows already delivered stay and the
	// loading indicator is left on.
	PolicyAbort Policy = iota
	// PolicyContinue skips the failed row and keeps going.
	PolicyContinue
)

// ParsePolicy maps a config value ("abort" | "continue") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "abort":
		return PolicyAbort, nil
	case "continue":
		return PolicyContinue, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown quote error policy %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyContinue {
		return "continue"
	}
	return "abort"
}

// QuoteFetcher is the part of the quote client the loader needs.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (types.Quote, error)
}

// UpdateKind tags an Update.
type UpdateKind int

const (
	// UpdateReset clears all rows.
	UpdateReset UpdateKind = iota
	// UpdateLoading shows the loading indicator; Total is the number of rows queued.
	UpdateLoading
	// UpdateRow appends Row.
	UpdateRow
	// UpdateDone marks the batch complete; Skipped counts rows dropped under PolicyContinue.
	UpdateDone
	// UpdateAborted marks the batch stopped early; Err says why.
	UpdateAborted
)

// Update is one message from the fetch goroutine to the display side.
type Update struct {
	Kind    UpdateKind
	Row     types.TickerRow
	Index   int
	Total   int
	Skipped int
	Err     error
}

// Loader parses listings and feeds quotes into rows.
type Loader struct {
	Quotes QuoteFetcher
	Policy Policy
	// MaxRows caps the rows fetched per load; 0 = all.
	MaxRows int
}

// New returns a Loader with the given fetcher and policy.
func New(q QuoteFetcher, p Policy) *Loader {
	return &Loader{Quotes: q, Policy: p}
}

// Load parses raw and starts the background fetch. Parse errors are returned directly and
// no goroutine is started. The returned channel yields Reset, Loading, one Row per
// resolved quote in listing order, then Done or Aborted; it is closed when the goroutine
// exits. A cancelled ctx closes the channel without a final Done/Aborted.
func (l *Loader) Load(ctx context.Context, raw string) (<-chan Update, error) {
	rows, err := quotes.ParseListing(raw)
	if err != nil {
		return nil, err
	}
	return l.Start(ctx, rows), nil
}

// Start runs the fetch over already parsed rows.
func (l *Loader) Start(ctx context.Context, rows []types.TickerRow) <-chan Update {
	if l.MaxRows > 0 && len(rows) > l.MaxRows {
		rows = rows[:l.MaxRows]
	}
	out := make(chan Update, 16)
	go l.run(ctx, rows, out)
	return out
}

func (l *Loader) run(ctx context.Context, rows []types.TickerRow, out chan<- Update) {
	defer close(out)
	start := time.Now()
	send := func(u Update) bool {
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if !send(Update{Kind: UpdateReset}) || !send(Update{Kind: UpdateLoading, Total: len(rows)}) {
		return
	}
	logging.Infof("loading quotes for %d symbols (policy=%s)", len(rows), l.Policy)
	skipped := 0
	for i, row := range rows {
		if ctx.Err() != nil {
			logging.Debugf("load cancelled after %d rows", i)
			return
		}
		q, err := l.Quotes.FetchQuote(ctx, row.Symbol)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if l.Policy == PolicyAbort {
				logging.Errorf("quote %s failed, aborting remaining %d rows: %v", row.Symbol, len(rows)-i, err)
				send(Update{Kind: UpdateAborted, Row: row, Index: i, Total: len(rows), Err: fmt.Errorf("%w at row %d (%s): %w", ErrAborted, i+1, row.Symbol, err)})
				return
			}
			logging.Warnf("quote %s failed, skipping: %v", row.Symbol, err)
			skipped++
			continue
		}
		row.Quote = q
		if !send(Update{Kind: UpdateRow, Row: row, Index: i, Total: len(rows)}) {
			return
		}
	}
	logging.Infof("loaded %d rows (%d skipped) in %s", len(rows)-skipped, skipped, time.Since(start).Round(time.Millisecond))
	send(Update{Kind: UpdateDone, Total: len(rows), Skipped: skipped})
}
