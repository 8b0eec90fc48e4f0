package nmea

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want Kind
	}{
		{"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,,*47", KindFixData},
		{"$GPGSV,3,1,12,02,65,290,42*7A", KindSatellitesInView},
		{"$GPXXX,1,2,3", KindUnknown},
		{"$GPRMC,130559.00,A,4517.27361,N,00552.34637,E,0.018,,220623,,,A*6C", KindUnknown},
		{"$GPGSA,A,3,04,05,,,,,,,,,,,1.8,1.0,1.4*30", KindUnknown},
		{"$GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,,*47", KindUnknown},
		{"garbage", KindUnknown},
		{"", KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.line); got != tc.want {
			t.Fatalf("Classify(%q)=%v want %v", tc.line, got, tc.want)
		}
	}
}

func TestParseLine_UnknownIsNoOp(t *testing.T) {
	fix := NewFix()
	before := *fix
	sess := NewSession()

	if err := ParseLine("$GPXXX,1,2,3", fix, sess); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(*fix, before) {
		t.Fatalf("fix mutated by unknown sentence: %+v", fix)
	}
	if len(sess.Satellites()) != 0 {
		t.Fatalf("session mutated by unknown sentence")
	}
}

func TestNewFix_Defaults(t *testing.T) {
	fix := NewFix()
	if fix.FixType != FixUnset {
		t.Fatalf("fix_type=%q want %q", fix.FixType, FixUnset)
	}
	if fix.Sats != nil {
		t.Fatalf("expected no satellite map on a fresh fix")
	}
	if !fix.Timestamp.IsZero() {
		t.Fatalf("expected zero timestamp")
	}
}
