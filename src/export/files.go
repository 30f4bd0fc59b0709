package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// CSVWriter writes a snapshot as CSV with a header row.
type CSVWriter struct{}

func (CSVWriter) Extension() string { return "csv" }

func (CSVWriter) Write(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write([]string{"snapshot_id", "taken_at", "symbol", "name", "exchange", "asset_type", "ipo_date", "delisting_date", "status", "price"}); err != nil {
		return err
	}
	for _, r := range s.Records {
		if err := w.Write([]string{
			r.SnapshotID,
			strconv.FormatInt(r.TakenAt, 10),
			r.Symbol,
			r.Name,
			r.Exchange,
			r.AssetType,
			r.IPODate,
			r.DelistingDate,
			r.Status,
			r.Price,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// JSONWriter writes a snapshot as a JSON array of records.
type JSONWriter struct{}

func (JSONWriter) Extension() string { return "json" }

func (JSONWriter) Write(s Snapshot, path string) error {
	recs := s.Records
	if recs == nil {
		recs = []Record{}
	}
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ParquetWriter writes a snapshot as a Parquet file.
type ParquetWriter struct{}

func (ParquetWriter) Extension() string { return "parquet" }

func (ParquetWriter) Write(s Snapshot, path string) error {
	return parquet.WriteFile(path, s.Records)
}
