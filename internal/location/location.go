// Package location classifies free-form location input (zipcode, coordinate
// pair, "City, Country", landmark) and normalizes it for lookups and display.
package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/saiprannav/weatherdesk/internal/apperr"
)

// Type is the detected shape of a location string.
type Type string

const (
	TypeZip         Type = "zip"
	TypeCoordinates Type = "coordinates"
	TypeCity        Type = "city"
	TypeLandmark    Type = "landmark"
)

// Patterns are checked in order; the first match wins, so zip beats
// coordinates beats city beats landmark.
var patterns = []struct {
	typ Type
	re  *regexp.Regexp
}{
	{TypeZip, regexp.MustCompile(`^\d{5}(-\d{4})?$`)},
	{TypeCoordinates, regexp.MustCompile(`^-?\d+(\.\d+)?,\s*-?\d+(\.\d+)?$`)},
	{TypeCity, regexp.MustCompile(`^[A-Za-z\s]{2,},\s*[A-Za-z]{2,}$`)},
	{TypeLandmark, regexp.MustCompile(`^[A-Za-z0-9\s\-'.]{2,}$`)},
}

var (
	unusualChars = regexp.MustCompile(`[^\w\s\-'.,:()]`)
	coordNumbers = regexp.MustCompile(`-?\d+\.?\d*`)
)

// Result is the outcome of classifying a location string.
type Result struct {
	Input      string
	Type       Type
	Normalized string
}

// Classify determines the type of a location string and returns its
// normalized form. Invalid input yields a validation error.
func Classify(input string) (Result, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{}, apperr.Validation("location must be a non-empty string")
	}
	if len(trimmed) < 2 {
		return Result{}, apperr.Validation("location must be at least 2 characters long")
	}

	for _, p := range patterns {
		if p.re.MatchString(trimmed) {
			return Result{Input: trimmed, Type: p.typ, Normalized: Normalize(trimmed, p.typ)}, nil
		}
	}

	// No pattern matched; accept reasonable-looking input as a landmark.
	if isReasonableLandmark(trimmed) {
		return Result{Input: trimmed, Type: TypeLandmark, Normalized: Normalize(trimmed, TypeLandmark)}, nil
	}

	return Result{}, apperr.Validation("invalid location format")
}

// isReasonableLandmark applies the fallback heuristic: bounded length, no
// unusual characters, at most 10 words.
func isReasonableLandmark(s string) bool {
	if len(s) > 100 {
		return false
	}
	if unusualChars.MatchString(s) {
		return false
	}
	return len(strings.Fields(s)) <= 10
}

// Normalize canonicalizes a location string for its detected type.
func Normalize(input string, typ Type) string {
	input = strings.TrimSpace(input)

	switch typ {
	case TypeCoordinates:
		lat, lon, err := ParseCoordinates(input)
		if err != nil {
			return input
		}
		return fmt.Sprintf("%.6f,%.6f", lat, lon)

	case TypeCity:
		parts := strings.Split(input, ",")
		for i, part := range parts {
			parts[i] = capitalizeWords(strings.TrimSpace(part))
		}
		return strings.Join(parts, ",")

	case TypeZip:
		return strings.ReplaceAll(input, " ", "")

	case TypeLandmark:
		words := strings.Fields(input)
		for i, w := range words {
			if len(w) > 3 {
				words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
			}
		}
		return strings.Join(words, " ")
	}

	return input
}

// capitalizeWords uppercases the first letter of each word and lowercases
// the rest. The classifier's city charset is ASCII letters, so a byte-wise
// split is safe here.
func capitalizeWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Display holds location information formatted for presentation.
type Display struct {
	Original    string  `json:"original"`
	Normalized  string  `json:"normalized"`
	Type        Type    `json:"type"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// FormatForDisplay formats a classified location, parsing out coordinates
// when the type supports it.
func FormatForDisplay(input string, typ Type) Display {
	normalized := Normalize(input, typ)

	d := Display{
		Original:    input,
		Normalized:  normalized,
		Type:        typ,
		DisplayName: normalized,
	}

	if typ == TypeCoordinates {
		if lat, lon, err := ParseCoordinates(normalized); err == nil {
			d.Latitude = lat
			d.Longitude = lon
			d.DisplayName = fmt.Sprintf("(%.4f, %.4f)", lat, lon)
		}
	}

	return d
}

// ParseCoordinates extracts a lat/lon pair from a coordinate string and
// checks it against valid geographic ranges.
func ParseCoordinates(s string) (lat, lon float64, err error) {
	nums := coordNumbers.FindAllString(s, -1)
	if len(nums) != 2 {
		return 0, 0, apperr.Validationf("expected two coordinate values in %q", s)
	}

	lat, err = strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return 0, 0, apperr.Validation("coordinates must be numeric values")
	}
	lon, err = strconv.ParseFloat(nums[1], 64)
	if err != nil {
		return 0, 0, apperr.Validation("coordinates must be numeric values")
	}

	if lat < -90 || lat > 90 {
		return 0, 0, apperr.Validation("latitude must be between -90 and 90 degrees")
	}
	if lon < -180 || lon > 180 {
		return 0, 0, apperr.Validation("longitude must be between -180 and 180 degrees")
	}

	return lat, lon, nil
}
