package track

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS fixes (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp  TEXT,
    fix_type   TEXT NOT NULL,
    latitude   REAL,
    longitude  REAL,
    altitude   REAL,
    hdop       REAL,
    satellites INTEGER
);

CREATE TABLE IF NOT EXISTS satellites (
    fix_id    INTEGER NOT NULL REFERENCES fixes(id),
    prn       INTEGER NOT NULL,
    elevation REAL,
    azimuth   REAL,
    snr       REAL
);

CREATE INDEX IF NOT EXISTS idx_satellites_fix ON satellites(fix_id);`

const insertFixSQL = `
INSERT INTO fixes (timestamp,
                   fix_type,
                   latitude,
                   longitude,
                   altitude,
                   hdop,
                   satellites)
VALUES (?, ?, ?, ?, ?, ?, ?)`

const insertSatelliteSQL = `
INSERT INTO satellites (fix_id,
                        prn,
                        elevation,
                        azimuth,
                        snr)
VALUES (?, ?, ?, ?, ?)`

const countFixesSQL = `SELECT COUNT(*) FROM fixes`
