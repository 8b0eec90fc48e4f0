package nmea

import "strconv"

const gsvMinFields = 4

// Session accumulates satellites-in-view entries across a run of GSV
// sentences sharing one sequence. One Session serves one logical GNSS source
// and must be confined to one thread of sentence processing; callers that
// interleave several receivers keep one Session per receiver.
type Session struct {
	sats     map[int]SatInfo
	expected int // messages announced for the current sequence
	seen     int // index of the last message applied
	inView   int
}

// NewSession returns an empty accumulation session.
func NewSession() *Session {
	return &Session{sats: make(map[int]SatInfo)}
}

// Satellites returns a copy of the accumulation so far, keyed by PRN.
func (s *Session) Satellites() map[int]SatInfo {
	out := make(map[int]SatInfo, len(s.sats))
	for id, info := range s.sats {
		out[id] = info
	}
	return out
}

// InView reports the total satellite count the current sequence advertises.
func (s *Session) InView() int { return s.inView }

// Complete reports whether the last message of the current sequence has been
// applied, i.e. the accumulation has been published to the fix record.
func (s *Session) Complete() bool {
	return s.expected > 0 && s.seen == s.expected
}

// parseGSV applies one satellites-in-view sentence to sess, and publishes the
// accumulated satellite set into fix.Sats once the sequence's last message
// has been seen.
//
// Fields:
//
//	0: talker+type ($GPGSV)
//	1: total messages in sequence
//	2: this message index (1..N)
//	3: total satellites in view
//	4+: repeated 4-tuples of PRN, elevation, azimuth, SNR
func parseGSV(f []string, fix *Fix, sess *Session) error {
	if len(f) < gsvMinFields {
		return &SyntaxError{Sentence: "GSV", Fields: len(f), Min: gsvMinFields}
	}

	total, err := strconv.Atoi(f[1])
	if err != nil {
		return &FieldError{Sentence: "GSV", Field: "total messages", Value: f[1], Constraint: "want integer"}
	}
	index, err := strconv.Atoi(f[2])
	if err != nil {
		return &FieldError{Sentence: "GSV", Field: "message index", Value: f[2], Constraint: "want integer"}
	}
	if n, err := strconv.Atoi(f[3]); err == nil {
		sess.inView = n
	}

	// A new sequence starts at message 1; that is the only point the
	// accumulation is cleared.
	if index == 1 {
		sess.sats = make(map[int]SatInfo)
		sess.expected = total
	}
	sess.seen = index

	for i := 4; i+3 < len(f); i += 4 {
		id, err := strconv.Atoi(f[i])
		if err != nil || id <= 0 {
			// An entry without a usable PRN is dropped, not an error.
			continue
		}
		sess.sats[id] = SatInfo{
			ElevDeg: floatOr(f[i+1], NotAvailable),
			AzimDeg: floatOr(f[i+2], NotAvailable),
			SNR:     floatOr(f[i+3], NotAvailable),
		}
	}

	if sess.Complete() {
		fix.Sats = sess.Satellites()
	}
	return nil
}

func floatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
