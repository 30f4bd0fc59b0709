package loader

import "github.com/iafilius/StockListViewer/src/types"

// TableModel is the display state built from Updates. It is not safe for concurrent use;
// the owner applies updates from a single goroutine.
type TableModel struct {
	Rows    []types.TickerRow
	Loading bool
	// Err is set when the last load aborted.
	Err error
	// Done is set once a load finished normally.
	Done    bool
	Skipped int
}

// Apply folds one update into the model.
func (m *TableModel) Apply(u Update) {
	switch u.Kind {
	case UpdateReset:
		m.Rows = m.Rows[:0]
		m.Loading = false
		m.Err = nil
		m.Done = false
		m.Skipped = 0
	case UpdateLoading:
		m.Loading = true
	case UpdateRow:
		m.Rows = append(m.Rows, u.Row)
	case UpdateDone:
		m.Loading = false
		m.Done = true
		m.Skipped = u.Skipped
	case UpdateAborted:
		// rows stay and the indicator stays on
		m.Err = u.Err
	}
}

// Len returns the number of data rows.
func (m *TableModel) Len() int { return len(m.Rows) }

// Row returns row i or false when out of range.
func (m *TableModel) Row(i int) (types.TickerRow, bool) {
	if i < 0 || i >= len(m.Rows) {
		return types.TickerRow{}, false
	}
	return m.Rows[i], true
}

// Drain applies every update from ch until it closes. Used by the headless reader.
func (m *TableModel) Drain(ch <-chan Update) {
	for u := range ch {
		m.Apply(u)
	}
}
