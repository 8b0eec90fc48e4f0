// Package track persists fix records to a SQLite track log.
package track

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gnssmon/internal/nmea"
)

// Store appends fixes and their satellite sets to a SQLite database. The
// database is opened lazily on first write with WAL journaling.
type Store struct {
	dbPath string

	dbOnce sync.Once
	db     *sql.DB
	dbErr  error

	closeOnce sync.Once
	closeErr  error
}

func New(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

func (s *Store) getDB() (*sql.DB, error) {
	s.dbOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL", s.dbPath))
		if err != nil {
			s.dbErr = fmt.Errorf("opening database: %w", err)
			return
		}
		if _, err := db.Exec(initSchemaSQL); err != nil {
			_ = db.Close()
			s.dbErr = fmt.Errorf("initializing schema: %w", err)
			return
		}
		s.db = db
	})
	return s.db, s.dbErr
}

// WriteFix inserts one fix and its satellite set in a single transaction.
func (s *Store) WriteFix(ctx context.Context, fix nmea.Fix) (err error) {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var ts sql.NullString
	if !fix.Timestamp.IsZero() {
		ts.Valid = true
		ts.String = fix.Timestamp.UTC().Format(time.RFC3339)
	}

	res, err := tx.ExecContext(ctx, insertFixSQL,
		ts, fix.FixType, fix.LatDeg, fix.LonDeg, fix.AltMeters, fix.HDOP, fix.Satellites)
	if err != nil {
		return fmt.Errorf("inserting fix: %w", err)
	}
	fixID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("fix id: %w", err)
	}

	for prn, info := range fix.Sats {
		_, err = tx.ExecContext(ctx, insertSatelliteSQL,
			fixID, prn, realOrNull(info.ElevDeg), realOrNull(info.AzimDeg), realOrNull(info.SNR))
		if err != nil {
			return fmt.Errorf("inserting satellite %d: %w", prn, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing fix: %w", err)
	}
	return nil
}

// CountFixes reports how many fixes the track log holds.
func (s *Store) CountFixes(ctx context.Context) (int64, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.QueryRowContext(ctx, countFixesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting fixes: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

// realOrNull maps the not-available sentinel to SQL NULL so the track log
// never records -Inf as a measurement.
func realOrNull(v float64) any {
	if math.IsInf(v, -1) {
		return nil
	}
	return v
}
