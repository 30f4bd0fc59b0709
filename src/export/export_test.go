package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/iafilius/StockListViewer/src/types"
)

func sampleRows() []types.TickerRow {
	return []types.TickerRow{
		{Symbol: "IBM", Name: "International Business Machines", Exchange: "NYSE", AssetType: "Stock", IPODate: "1962-01-02", DelistingDate: "null", Status: "Active",
			Quote: types.Quote{Symbol: "IBM", Status: types.QuotePriced, Price: "189.5000"}},
		{Symbol: "MISS", Name: "Missing, Inc", Exchange: "NASDAQ", AssetType: "Stock", IPODate: "2001-05-05", DelistingDate: "null", Status: "Active",
			Quote: types.Quote{Symbol: "MISS", Status: types.QuoteUnavailable, Price: types.Unavailable}},
	}
}

var takenAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot(sampleRows(), takenAt)
	if len(s.Records) != 2 {
		t.Fatalf("records=%d", len(s.Records))
	}
	if s.Records[0].PriceValue == nil || *s.Records[0].PriceValue != 189.5 {
		t.Fatalf("price value for IBM: %v", s.Records[0].PriceValue)
	}
	if s.Records[1].PriceValue != nil || s.Records[1].Price != types.Unavailable {
		t.Fatalf("N/A row should have text only: %+v", s.Records[1])
	}
	for _, r := range s.Records {
		if r.SnapshotID != s.ID.String() || r.TakenAt != takenAt.UnixMilli() {
			t.Fatalf("snapshot id/time not stamped: %+v", r)
		}
	}
	if NewSnapshot(nil, takenAt).ID == s.ID {
		t.Fatalf("snapshot ids should be unique")
	}
}

func TestNewWriter_Formats(t *testing.T) {
	for _, f := range []string{"csv", "JSON", " parquet ", "sqlite", "db"} {
		if NewWriter(f) == nil {
			t.Fatalf("format %q not supported", f)
		}
	}
	if _, err := WriterFor("xlsx"); err == nil {
		t.Fatalf("expected error for xlsx")
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.csv")
	if err := (CSVWriter{}).Write(NewSnapshot(sampleRows(), takenAt), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 3 || recs[0][2] != "symbol" || recs[2][3] != "Missing, Inc" || recs[1][9] != "189.5000" {
		t.Fatalf("unexpected csv: %v", recs)
	}
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := (JSONWriter{}).Write(NewSnapshot(sampleRows(), takenAt), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []Record
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[1].Symbol != "MISS" {
		t.Fatalf("unexpected json records: %+v", got)
	}
}

func TestParquetWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.parquet")
	if err := (ParquetWriter{}).Write(NewSnapshot(sampleRows(), takenAt), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := parquet.ReadFile[Record](path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 2 || got[0].Symbol != "IBM" || got[0].PriceValue == nil || got[1].PriceValue != nil {
		t.Fatalf("unexpected parquet rows: %+v", got)
	}
}

func TestSQLiteWriter_AppendsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	w := SQLiteWriter{}
	for i := 0; i < 2; i++ {
		if err := w.Write(NewSnapshot(sampleRows(), takenAt.Add(time.Duration(i)*time.Hour)), path); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var snaps, rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&snaps); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM listing_rows`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if snaps != 2 || rows != 4 {
		t.Fatalf("snapshots=%d rows=%d want 2/4", snaps, rows)
	}
	var nulls int
	if err := db.QueryRow(`SELECT COUNT(*) FROM listing_rows WHERE price_value IS NULL`).Scan(&nulls); err != nil {
		t.Fatal(err)
	}
	if nulls != 2 {
		t.Fatalf("N/A rows should store NULL price_value, got %d", nulls)
	}
}
