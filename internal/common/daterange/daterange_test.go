package daterange

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

func TestParsePresets(t *testing.T) {
	t.Run("today pins both ends to the current day", func(t *testing.T) {
		r, err := Parse(PresetToday, "", "", now)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		wantStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		if !r.Start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", r.Start, wantStart)
		}
		if r.End.Day() != 15 || r.End.Hour() != 23 || r.End.Minute() != 59 {
			t.Errorf("end = %v, want end of the same day", r.End)
		}
	})

	t.Run("7days reaches one week back", func(t *testing.T) {
		r, err := Parse(PresetWeek, "", "", now)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if r.Start.Day() != 8 || r.Start.Month() != time.June {
			t.Errorf("start = %v, want 2025-06-08", r.Start)
		}
	})

	t.Run("month covers the full calendar month", func(t *testing.T) {
		r, err := Parse(PresetThisMonth, "", "", now)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if r.Start.Day() != 1 {
			t.Errorf("start day = %d, want 1", r.Start.Day())
		}
		if r.End.Day() != 30 || r.End.Month() != time.June {
			t.Errorf("end = %v, want last day of June", r.End)
		}
	})

	t.Run("unknown preset is rejected", func(t *testing.T) {
		if _, err := Parse("yesterday", "", "", now); err == nil {
			t.Fatal("expected error for unknown preset")
		}
	})
}

func TestParseExplicitDates(t *testing.T) {
	r, err := Parse("", "2025-01-01", "2025-01-31", now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Start.Hour() != 0 || r.Start.Day() != 1 {
		t.Errorf("start = %v, want 2025-01-01 00:00", r.Start)
	}
	// the window is inclusive of the whole end day
	inside := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	if inside.After(r.End) {
		t.Errorf("end = %v should cover %v", r.End, inside)
	}
	outside := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !outside.After(r.End) {
		t.Errorf("end = %v should not reach into the next day", r.End)
	}
}

func TestParseDefaultsToTrailing30Days(t *testing.T) {
	r, err := Parse("", "", "", now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
}

func TestParseInvalidDate(t *testing.T) {
	if _, err := Parse("", "01/06/2025", "", now); err == nil {
		t.Fatal("expected error for malformed start date")
	}
}
