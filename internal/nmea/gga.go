package nmea

import (
	"errors"
	"math"
	"strconv"
	"time"
)

const ggaMinFields = 10

var fixQualityLabels = map[int]string{
	0: FixNone,
	1: FixGPS,
	2: FixDGPS,
	4: FixRTK,
}

// parseGGA applies one fix-data sentence to fix.
//
// Fields:
//
//	0: talker+type ($GPGGA)
//	1: UTC time (hhmmss.sss)
//	2: latitude (ddmm.mmmm)
//	3: N/S
//	4: longitude (dddmm.mmmm)
//	5: E/W
//	6: fix quality (0=invalid, 1=GPS, 2=DGPS, 4=RTK)
//	7: number of satellites
//	8: HDOP
//	9: altitude (meters)
func parseGGA(f []string, fix *Fix) error {
	if len(f) < ggaMinFields {
		return &SyntaxError{Sentence: "GGA", Fields: len(f), Min: ggaMinFields}
	}

	ts := f[1]
	if len(ts) < 6 {
		return &FieldError{Sentence: "GGA", Field: "time", Value: ts, Constraint: "want at least hhmmss"}
	}
	hour, errH := strconv.Atoi(ts[0:2])
	min, errM := strconv.Atoi(ts[2:4])
	sec, errS := strconv.Atoi(ts[4:6])
	if errH == nil && errM == nil && errS == nil && validClock(hour, min, sec) {
		now := time.Now().UTC()
		fix.Timestamp = time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, time.UTC)
	}
	// An unreadable time of day leaves the timestamp unset; it is not an error.

	lat, err := DecimalDegrees(f[2], f[3])
	if err != nil {
		return asGGAField(err, "latitude")
	}
	fix.LatDeg = lat

	lon, err := DecimalDegrees(f[4], f[5])
	if err != nil {
		return asGGAField(err, "longitude")
	}
	if math.IsInf(lon, -1) {
		return &FieldError{Sentence: "GGA", Field: "longitude", Value: f[4], Constraint: "conversion failed"}
	}
	fix.LonDeg = lon

	quality, err := strconv.Atoi(f[6])
	if err != nil {
		return &FieldError{Sentence: "GGA", Field: "fix quality", Value: f[6], Constraint: "want integer code"}
	}
	label, ok := fixQualityLabels[quality]
	if !ok {
		return &FieldError{Sentence: "GGA", Field: "fix quality", Value: f[6], Constraint: "unknown code, want 0, 1, 2 or 4"}
	}
	fix.FixType = label

	sats, err := strconv.Atoi(f[7])
	if err != nil {
		return &FieldError{Sentence: "GGA", Field: "satellites", Value: f[7], Constraint: "want integer"}
	}
	if sats < 0 || sats > 50 {
		return &FieldError{Sentence: "GGA", Field: "satellites", Value: f[7], Constraint: "want 0..50"}
	}
	fix.Satellites = sats

	hdop, err := strconv.ParseFloat(f[8], 64)
	if err != nil {
		return &FieldError{Sentence: "GGA", Field: "hdop", Value: f[8], Constraint: "want number"}
	}
	if hdop <= 0 || hdop > 50.0 {
		return &FieldError{Sentence: "GGA", Field: "hdop", Value: f[8], Constraint: "want (0,50]"}
	}
	fix.HDOP = hdop

	alt, err := strconv.ParseFloat(f[9], 64)
	if err != nil {
		return &FieldError{Sentence: "GGA", Field: "altitude", Value: f[9], Constraint: "want number"}
	}
	if alt < -500 || alt > 10000 {
		return &FieldError{Sentence: "GGA", Field: "altitude", Value: f[9], Constraint: "want -500..10000 m"}
	}
	fix.AltMeters = alt

	return nil
}

// asGGAField names the offending coordinate field on converter errors. The
// converter cannot tell latitude from longitude itself when the hemisphere
// token is missing.
func asGGAField(err error, field string) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		fe.Sentence = "GGA"
		fe.Field = field
	}
	return err
}

func validClock(hour, min, sec int) bool {
	return hour >= 0 && hour <= 23 && min >= 0 && min <= 59 && sec >= 0 && sec <= 59
}
