package nmea

import (
	"fmt"
	"strconv"
)

// DecimalDegrees converts an NMEA degrees-minutes value plus hemisphere
// letter into signed decimal degrees. Latitude (N/S) values carry two degree
// digits (ddmm.mmmm), longitude (E/W) values three (dddmm.mmmm). South and
// west come out negative.
func DecimalDegrees(value, hemi string) (float64, error) {
	field := "coordinate"
	switch hemi {
	case "N", "S":
		field = "latitude"
	case "E", "W":
		field = "longitude"
	}

	if value == "" || hemi == "" {
		return 0, &FieldError{Field: field, Value: value, Constraint: "empty value or hemisphere"}
	}

	degDigits := 3
	if hemi == "N" || hemi == "S" {
		degDigits = 2
	}
	if len(value) < degDigits {
		return 0, &FieldError{Field: field, Value: value, Constraint: fmt.Sprintf("want at least %d degree digits", degDigits)}
	}

	deg, err := strconv.Atoi(value[:degDigits])
	if err != nil {
		return 0, &FieldError{Field: field, Value: value, Constraint: "degrees not an integer"}
	}
	mins, err := strconv.ParseFloat(value[degDigits:], 64)
	if err != nil {
		return 0, &FieldError{Field: field, Value: value, Constraint: "minutes not a number"}
	}

	dec := float64(deg) + mins/60.0
	if hemi == "S" || hemi == "W" {
		dec = -dec
	}
	return dec, nil
}
