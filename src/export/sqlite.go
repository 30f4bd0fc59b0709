package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/iafilius/StockListViewer/src/logging"
)

// SQLiteWriter appends snapshots to a SQLite database, creating tables on first use.
type SQLiteWriter struct{}

func (SQLiteWriter) Extension() string { return "db" }

func (SQLiteWriter) Write(s Snapshot, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO snapshots (id, taken_at, row_count) VALUES (?, ?, ?)`,
		s.ID.String(), s.TakenAt.UnixMilli(), len(s.Records)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO listing_rows
		(snapshot_id, position, symbol, name, exchange, asset_type, ipo_date, delisting_date, status, price, price_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()
	for i, r := range s.Records {
		var pv sql.NullFloat64
		if r.PriceValue != nil {
			pv = sql.NullFloat64{Float64: *r.PriceValue, Valid: true}
		}
		if _, err := stmt.Exec(s.ID.String(), i, r.Symbol, r.Name, r.Exchange, r.AssetType, r.IPODate, r.DelistingDate, r.Status, r.Price, pv); err != nil {
			return fmt.Errorf("insert row %s: %w", r.Symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logging.Infof("sqlite snapshot %s: %d rows -> %s", s.ID, len(s.Records), path)
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id        TEXT PRIMARY KEY,
			taken_at  INTEGER NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS listing_rows (
			snapshot_id    TEXT NOT NULL REFERENCES snapshots(id),
			position       INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			name           TEXT,
			exchange       TEXT,
			asset_type     TEXT,
			ipo_date       TEXT,
			delisting_date TEXT,
			status         TEXT,
			price          TEXT,
			price_value    REAL,
			PRIMARY KEY (snapshot_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_symbol ON listing_rows(symbol)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
