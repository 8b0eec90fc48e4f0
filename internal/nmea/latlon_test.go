package nmea

import (
	"errors"
	"math"
	"testing"
)

func TestDecimalDegrees_Latitude(t *testing.T) {
	got, err := DecimalDegrees("4807.038", "N")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(got-48.1173) > 0.002 {
		t.Fatalf("lat=%v want ~48.1173", got)
	}
}

func TestDecimalDegrees_Longitude(t *testing.T) {
	got, err := DecimalDegrees("11131.000", "E")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(got-111.5167) > 0.002 {
		t.Fatalf("lon=%v want ~111.5167", got)
	}
}

func TestDecimalDegrees_HemisphereSymmetry(t *testing.T) {
	n, err := DecimalDegrees("4807.038", "N")
	if err != nil {
		t.Fatalf("N: %v", err)
	}
	s, err := DecimalDegrees("4807.038", "S")
	if err != nil {
		t.Fatalf("S: %v", err)
	}
	if s != -n {
		t.Fatalf("S=%v want %v", s, -n)
	}

	e, err := DecimalDegrees("01131.000", "E")
	if err != nil {
		t.Fatalf("E: %v", err)
	}
	w, err := DecimalDegrees("01131.000", "W")
	if err != nil {
		t.Fatalf("W: %v", err)
	}
	if w != -e {
		t.Fatalf("W=%v want %v", w, -e)
	}
}

func TestDecimalDegrees_EmptyInputs(t *testing.T) {
	if _, err := DecimalDegrees("", "N"); err == nil {
		t.Fatalf("expected error for empty value")
	}
	if _, err := DecimalDegrees("4807.038", ""); err == nil {
		t.Fatalf("expected error for empty hemisphere")
	}
}

func TestDecimalDegrees_TooShortForDegrees(t *testing.T) {
	// One digit cannot hold two latitude degree digits.
	if _, err := DecimalDegrees("4", "N"); err == nil {
		t.Fatalf("expected error for short latitude")
	}
	// Two digits cannot hold three longitude degree digits.
	var fe *FieldError
	_, err := DecimalDegrees("11", "E")
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "longitude" {
		t.Fatalf("field=%q want longitude", fe.Field)
	}
}

func TestDecimalDegrees_BadNumbers(t *testing.T) {
	if _, err := DecimalDegrees("ab07.038", "N"); err == nil {
		t.Fatalf("expected error for bad degrees")
	}
	if _, err := DecimalDegrees("48xx.038", "N"); err == nil {
		t.Fatalf("expected error for bad minutes")
	}
	// Degrees only, no minutes part at all.
	if _, err := DecimalDegrees("48", "N"); err == nil {
		t.Fatalf("expected error for missing minutes")
	}
}

func TestDecimalDegrees_Deterministic(t *testing.T) {
	a, err := DecimalDegrees("4807.038", "N")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := DecimalDegrees("4807.038", "N")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if a != b {
		t.Fatalf("not deterministic: %v vs %v", a, b)
	}
}
