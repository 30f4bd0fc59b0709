package quotes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iafilius/StockListViewer/src/types"
)

// ErrMissingColumn is returned when the listing header lacks a required column.
var ErrMissingColumn = errors.New("listing: missing column")

// ListingColumns are the LISTING_STATUS header names, in display order.
var ListingColumns = []string{"symbol", "name", "exchange", "assetType", "ipoDate", "delistingDate", "status"}

// ParseListing parses a LISTING_STATUS CSV body into rows, in input order. Columns are
// located by header name so their order in the payload does not matter.
func ParseListing(raw string) ([]types.TickerRow, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty listing", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read listing header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	pos := make([]int, len(ListingColumns))
	for i, name := range ListingColumns {
		p, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		pos[i] = p
	}

	var rows []types.TickerRow
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read listing line %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		field := func(i int) string {
			if pos[i] < len(rec) {
				return strings.TrimSpace(rec[pos[i]])
			}
			return ""
		}
		rows = append(rows, types.TickerRow{
			Symbol:        field(0),
			Name:          field(1),
			Exchange:      field(2),
			AssetType:     field(3),
			IPODate:       field(4),
			DelistingDate: field(5),
			Status:        field(6),
		})
	}
	return rows, nil
}
