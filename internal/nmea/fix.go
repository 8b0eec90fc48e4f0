package nmea

import (
	"encoding/json"
	"math"
	"time"
)

// Fix quality labels produced by GGA parsing. FixUnset is the zero state of a
// fresh record, before any fix-data sentence has been applied.
const (
	FixUnset = "No fix"
	FixNone  = "No Fix"
	FixGPS   = "GPS Fix"
	FixDGPS  = "DGPS Fix"
	FixRTK   = "RTK Fix"
)

// NotAvailable marks a satellite measurement that was absent or unreadable in
// the sentence. It is a sentinel, not a legitimate value; -Inf keeps min/max
// style aggregation downstream cheap.
var NotAvailable = math.Inf(-1)

// SatInfo describes one visible satellite as reported by a GSV sequence.
type SatInfo struct {
	ElevDeg float64 `json:"elev_deg"` // degrees above horizon
	AzimDeg float64 `json:"azim_deg"` // degrees from true north
	SNR     float64 `json:"snr"`      // dB-Hz
}

// MarshalJSON renders NotAvailable measurements as null so that a satellite
// with partial data stays marshalable.
func (s SatInfo) MarshalJSON() ([]byte, error) {
	type shadow struct {
		ElevDeg *float64 `json:"elev_deg"`
		AzimDeg *float64 `json:"azim_deg"`
		SNR     *float64 `json:"snr"`
	}
	var sh shadow
	if !math.IsInf(s.ElevDeg, -1) {
		v := s.ElevDeg
		sh.ElevDeg = &v
	}
	if !math.IsInf(s.AzimDeg, -1) {
		v := s.AzimDeg
		sh.AzimDeg = &v
	}
	if !math.IsInf(s.SNR, -1) {
		v := s.SNR
		sh.SNR = &v
	}
	return json.Marshal(sh)
}

// Fix is one GNSS fix snapshot. The caller owns it: create it with NewFix,
// pass it into ParseLine, and it is mutated field by field as sentences are
// applied. After a parse error the record is not guaranteed consistent;
// discard it or re-validate.
type Fix struct {
	Satellites int             `json:"satellites"`         // in use, 0..50
	LatDeg     float64         `json:"lat_deg"`            // signed decimal degrees
	LonDeg     float64         `json:"lon_deg"`            // signed decimal degrees
	AltMeters  float64         `json:"alt_meters"`         // -500..10000
	SNRAvg     float64         `json:"snr_avg,omitempty"`  // left unset here; downstream concern
	HDOP       float64         `json:"hdop"`               // (0,50]
	VDOP       float64         `json:"vdop,omitempty"`     // unused by current sentence support
	Sats       map[int]SatInfo `json:"sats,omitempty"`     // keyed by PRN
	FixType    string          `json:"fix_type"`
	Timestamp  time.Time       `json:"timestamp,omitzero"` // processing date + sentence time of day, UTC
}

// NewFix returns an empty fix record.
func NewFix() *Fix {
	return &Fix{FixType: FixUnset}
}
