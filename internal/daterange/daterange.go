// Package daterange validates query date ranges against the application's
// sliding window policy and produces display-formatted date lists.
package daterange

import (
	"time"

	"github.com/saiprannav/weatherdesk/internal/apperr"
)

const (
	// MaxDaysPast is how far back a range may start.
	MaxDaysPast = 7
	// MaxDaysFuture is how far ahead a range may end.
	MaxDaysFuture = 5
	// MaxRangeDays is the largest allowed span between start and end.
	MaxRangeDays = 5

	// Format is the accepted wire format for dates.
	Format = "2006-01-02"
)

// Range is a validated date range. Days is the inclusive day count.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"range_days"`
}

// Validator checks date ranges against the window policy. The zero value is
// not usable; construct with New. The clock is injectable for tests.
type Validator struct {
	now func() time.Time
}

// New creates a Validator using the wall clock.
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewAt creates a Validator with a fixed clock, for tests.
func NewAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate parses and checks a (start, end) pair. Checks run in a fixed
// order and the first failure wins: parse, ordering, span, past bound,
// future bound.
func (v *Validator) Validate(startStr, endStr string) (Range, error) {
	start, err := time.Parse(Format, startStr)
	if err != nil {
		return Range{}, apperr.Validationf("invalid date format, use %s", Format)
	}
	end, err := time.Parse(Format, endStr)
	if err != nil {
		return Range{}, apperr.Validationf("invalid date format, use %s", Format)
	}

	today := truncate(v.now())
	earliest := today.AddDate(0, 0, -MaxDaysPast)
	latest := today.AddDate(0, 0, MaxDaysFuture)

	if start.After(end) {
		return Range{}, apperr.Validation("start date must be before or equal to end date")
	}

	span := int(end.Sub(start).Hours() / 24)
	if span > MaxRangeDays {
		return Range{}, apperr.Validationf("date range cannot exceed %d days", MaxRangeDays)
	}

	if start.Before(earliest) {
		return Range{}, apperr.Validationf("start date cannot be more than %d days in the past", MaxDaysPast)
	}
	if end.After(latest) {
		return Range{}, apperr.Validationf("end date cannot be more than %d days in the future", MaxDaysFuture)
	}

	return Range{Start: start, End: end, Days: span + 1}, nil
}

// Bounds describes the currently valid date window.
type Bounds struct {
	Earliest     string `json:"earliest_date"`
	Latest       string `json:"latest_date"`
	Today        string `json:"today"`
	MaxRangeDays int    `json:"max_range_days"`
}

// Bounds returns the valid window relative to the current date.
func (v *Validator) Bounds() Bounds {
	today := truncate(v.now())
	return Bounds{
		Earliest:     today.AddDate(0, 0, -MaxDaysPast).Format(Format),
		Latest:       today.AddDate(0, 0, MaxDaysFuture).Format(Format),
		Today:        today.Format(Format),
		MaxRangeDays: MaxRangeDays,
	}
}

// Day is a single calendar day formatted for display.
type Day struct {
	ISO     string `json:"iso"`
	Display string `json:"display"`
	Short   string `json:"short"`
}

// FormatDay formats one date for display.
func FormatDay(d time.Time) Day {
	return Day{
		ISO:     d.Format(Format),
		Display: d.Format("January 02, 2006"),
		Short:   d.Format("01/02/2006"),
	}
}

// Generate returns one display entry per calendar day from start through end
// inclusive.
func Generate(start, end time.Time) []Day {
	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
