package daterange

import (
	"strings"
	"testing"
	"time"
)

// Fixed clock so window checks are deterministic.
func fixedValidator() *Validator {
	return NewAt(func() time.Time {
		return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	})
}

func TestValidate(t *testing.T) {
	v := fixedValidator()

	tests := []struct {
		name     string
		start    string
		end      string
		wantDays int
		wantErr  string
	}{
		{"single day", "2024-06-15", "2024-06-15", 1, ""},
		{"five day span", "2024-06-14", "2024-06-18", 5, ""},
		{"full window", "2024-06-10", "2024-06-15", 6, ""},
		{"bad start format", "06/15/2024", "2024-06-16", 0, "invalid date format"},
		{"bad end format", "2024-06-15", "tomorrow", 0, "invalid date format"},
		{"start after end", "2024-06-16", "2024-06-15", 0, "before or equal"},
		{"span too large", "2024-06-10", "2024-06-16", 0, "cannot exceed 5 days"},
		{"too far past", "2024-06-07", "2024-06-08", 0, "7 days in the past"},
		{"too far future", "2024-06-18", "2024-06-21", 0, "5 days in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := v.Validate(tt.start, tt.end)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Validate(%s, %s) expected error, got %+v", tt.start, tt.end, r)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%s, %s) error = %v", tt.start, tt.end, err)
			}
			if r.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", r.Days, tt.wantDays)
			}
		})
	}
}

// Span check fires before the window checks: a 10-day range entirely outside
// the window is still rejected for its span.
func TestValidateSpanCheckedFirst(t *testing.T) {
	v := fixedValidator()

	_, err := v.Validate("2024-01-01", "2024-01-10")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "5 days") {
		t.Errorf("error = %q, want mention of the 5 day limit", err.Error())
	}
}

func TestBounds(t *testing.T) {
	b := fixedValidator().Bounds()

	if b.Earliest != "2024-06-08" {
		t.Errorf("Earliest = %s, want 2024-06-08", b.Earliest)
	}
	if b.Latest != "2024-06-20" {
		t.Errorf("Latest = %s, want 2024-06-20", b.Latest)
	}
	if b.Today != "2024-06-15" {
		t.Errorf("Today = %s, want 2024-06-15", b.Today)
	}
	if b.MaxRangeDays != 5 {
		t.Errorf("MaxRangeDays = %d, want 5", b.MaxRangeDays)
	}
}

func TestGenerate(t *testing.T) {
	d := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	one := Generate(d, d)
	if len(one) != 1 {
		t.Fatalf("Generate(d, d) returned %d entries, want 1", len(one))
	}
	if one[0].ISO != "2024-06-15" {
		t.Errorf("ISO = %s, want 2024-06-15", one[0].ISO)
	}

	five := Generate(d, d.AddDate(0, 0, 4))
	if len(five) != 5 {
		t.Fatalf("Generate(d, d+4) returned %d entries, want 5", len(five))
	}
	for i, day := range five {
		want := d.AddDate(0, 0, i).Format(Format)
		if day.ISO != want {
			t.Errorf("entry %d ISO = %s, want %s", i, day.ISO, want)
		}
	}
}

func TestFormatDay(t *testing.T) {
	day := FormatDay(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	if day.ISO != "2024-06-05" {
		t.Errorf("ISO = %s", day.ISO)
	}
	if day.Display != "June 05, 2024" {
		t.Errorf("Display = %s", day.Display)
	}
	if day.Short != "06/05/2024" {
		t.Errorf("Short = %s", day.Short)
	}
}
