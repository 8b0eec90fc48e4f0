package track

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"gnssmon/internal/nmea"
)

func testFix() nmea.Fix {
	fix := *nmea.NewFix()
	fix.LatDeg = 48.1173
	fix.LonDeg = 11.5167
	fix.AltMeters = 545.4
	fix.HDOP = 0.9
	fix.Satellites = 8
	fix.FixType = nmea.FixGPS
	fix.Timestamp = time.Date(2026, 8, 31, 12, 35, 19, 0, time.UTC)
	fix.Sats = map[int]nmea.SatInfo{
		2: {ElevDeg: 65, AzimDeg: 290, SNR: 42},
		4: {ElevDeg: 40, AzimDeg: 150, SNR: nmea.NotAvailable},
	}
	return fix
}

func TestWriteFix_RoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "track.db"))
	defer store.Close()

	ctx := context.Background()
	if err := store.WriteFix(ctx, testFix()); err != nil {
		t.Fatalf("WriteFix() error: %v", err)
	}

	n, err := store.CountFixes(ctx)
	if err != nil {
		t.Fatalf("CountFixes() error: %v", err)
	}
	if n != 1 {
		t.Fatalf("fixes=%d want 1", n)
	}

	db, err := store.getDB()
	if err != nil {
		t.Fatalf("getDB() error: %v", err)
	}

	var fixType string
	var lat, hdop float64
	var sats int
	row := db.QueryRow(`SELECT fix_type, latitude, hdop, satellites FROM fixes`)
	if err := row.Scan(&fixType, &lat, &hdop, &sats); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if fixType != nmea.FixGPS || sats != 8 {
		t.Fatalf("fix_type=%q sats=%d", fixType, sats)
	}

	// PRN 4's SNR was the not-available sentinel and must be stored as NULL.
	var snr sql.NullFloat64
	row = db.QueryRow(`SELECT snr FROM satellites WHERE prn = 4`)
	if err := row.Scan(&snr); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if snr.Valid {
		t.Fatalf("snr=%v want NULL", snr.Float64)
	}
}

func TestWriteFix_MultipleAppends(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "track.db"))
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.WriteFix(ctx, testFix()); err != nil {
			t.Fatalf("WriteFix() #%d error: %v", i, err)
		}
	}
	n, err := store.CountFixes(ctx)
	if err != nil {
		t.Fatalf("CountFixes() error: %v", err)
	}
	if n != 3 {
		t.Fatalf("fixes=%d want 3", n)
	}
}

func TestStore_CloseTwice(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "track.db"))
	if err := store.WriteFix(context.Background(), testFix()); err != nil {
		t.Fatalf("WriteFix() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}
