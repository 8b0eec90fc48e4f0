package nmea

import "fmt"

// SyntaxError reports a sentence with fewer comma-separated fields than its
// parser requires. The sentence is unusable; no partial result is kept.
type SyntaxError struct {
	Sentence string
	Fields   int
	Min      int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("nmea: %s frame too short: %d fields, want at least %d", e.Sentence, e.Fields, e.Min)
}

// FieldError reports a field that is present but fails to parse as its
// expected type, or parses but violates a declared range or enumeration.
type FieldError struct {
	Sentence   string
	Field      string
	Value      string
	Constraint string
}

func (e *FieldError) Error() string {
	if e.Sentence == "" {
		return fmt.Sprintf("nmea: %s %q: %s", e.Field, e.Value, e.Constraint)
	}
	return fmt.Sprintf("nmea: %s %s %q: %s", e.Sentence, e.Field, e.Value, e.Constraint)
}
