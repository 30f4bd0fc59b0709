// Package export writes a loaded listing snapshot to disk.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iafilius/StockListViewer/src/types"
)

// Record is one exported row. Price is the text shown in the table; PriceValue is set only
// for numeric quotes.
type Record struct {
	SnapshotID    string   `json:"snapshot_id" parquet:"snapshot_id"`
	TakenAt       int64    `json:"taken_at" parquet:"taken_at"` // Unix milliseconds
	Symbol        string   `json:"symbol" parquet:"symbol"`
	Name          string   `json:"name" parquet:"name"`
	Exchange      string   `json:"exchange" parquet:"exchange"`
	AssetType     string   `json:"asset_type" parquet:"asset_type"`
	IPODate       string   `json:"ipo_date" parquet:"ipo_date"`
	DelistingDate string   `json:"delisting_date" parquet:"delisting_date"`
	Status        string   `json:"status" parquet:"status"`
	Price         string   `json:"price" parquet:"price"`
	PriceValue    *float64 `json:"price_value,omitempty" parquet:"price_value,optional"`
}

// Snapshot is a set of rows captured together.
type Snapshot struct {
	ID      uuid.UUID
	TakenAt time.Time
	Records []Record
}

// NewSnapshot converts table rows into a snapshot with a fresh id.
func NewSnapshot(rows []types.TickerRow, at time.Time) Snapshot {
	id := uuid.New()
	recs := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec := Record{
			SnapshotID:    id.String(),
			TakenAt:       at.UnixMilli(),
			Symbol:        r.Symbol,
			Name:          r.Name,
			Exchange:      r.Exchange,
			AssetType:     r.AssetType,
			IPODate:       r.IPODate,
			DelistingDate: r.DelistingDate,
			Status:        r.Status,
			Price:         r.Quote.Display(),
		}
		if r.Quote.Status == types.QuotePriced {
			if d, err := decimal.NewFromString(r.Quote.Price); err == nil {
				f := d.InexactFloat64()
				rec.PriceValue = &f
			}
		}
		recs = append(recs, rec)
	}
	return Snapshot{ID: id, TakenAt: at, Records: recs}
}

// Writer persists snapshots. Implementations own their path semantics: file writers
// overwrite path, SQLiteWriter appends to the database at path.
type Writer interface {
	Write(s Snapshot, path string) error
	Extension() string
}

// NewWriter creates an implementation by format (csv, json, parquet, sqlite).
// Returns nil if format not supported.
func NewWriter(format string) Writer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVWriter{}
	case "json":
		return JSONWriter{}
	case "parquet":
		return ParquetWriter{}
	case "sqlite", "db":
		return SQLiteWriter{}
	default:
		return nil
	}
}

// WriterFor is NewWriter returning an error for unknown formats.
func WriterFor(format string) (Writer, error) {
	w := NewWriter(format)
	if w == nil {
		return nil, fmt.Errorf("export: unsupported format %q (use csv, json, parquet, sqlite)", format)
	}
	return w, nil
}
