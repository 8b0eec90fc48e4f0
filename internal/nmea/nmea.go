package nmea

import "strings"

// Kind is the sentence classification of one raw NMEA line.
type Kind int

const (
	KindUnknown Kind = iota
	KindFixData
	KindSatellitesInView
)

const (
	prefixGGA = "$GPGGA"
	prefixGSV = "$GPGSV"
)

// Classify reports the kind of one raw line by exact prefix match. It never
// fails; any unsupported talker or sentence type is KindUnknown.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, prefixGGA):
		return KindFixData
	case strings.HasPrefix(line, prefixGSV):
		return KindSatellitesInView
	}
	return KindUnknown
}

// ParseLine classifies one raw line and applies it to fix. Satellite
// visibility accumulates into sess across calls. Unknown sentences are a
// no-op; parser errors propagate unchanged.
func ParseLine(line string, fix *Fix, sess *Session) error {
	switch Classify(line) {
	case KindFixData:
		return parseGGA(strings.Split(line, ","), fix)
	case KindSatellitesInView:
		return parseGSV(strings.Split(line, ","), fix, sess)
	}
	return nil
}
