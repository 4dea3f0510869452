// Package daterange parses the reporting window every read view filters on.
// The range is resolved per request from query parameters instead of being
// held in server-side session state.
package daterange

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Range is an inclusive calendar-day window. Start is pinned to 00:00:00 and
// End to the last nanosecond of its day.
type Range struct {
	Start time.Time
	End   time.Time
}

// Presets accepted by Parse.
const (
	PresetToday     = "today"
	PresetWeek      = "7days"
	PresetMonth30   = "30days"
	PresetThisMonth = "month"
)

// Parse resolves a window from an explicit preset or a start/end pair.
// With neither given it defaults to the trailing 30 days. start > end is
// accepted as supplied; the caller gets an empty result set, not an error.
func Parse(preset, startStr, endStr string, now time.Time) (Range, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if preset != "" {
		switch preset {
		case PresetToday:
			return newRange(today, today), nil
		case PresetWeek:
			return newRange(today.AddDate(0, 0, -7), today), nil
		case PresetMonth30:
			return newRange(today.AddDate(0, 0, -30), today), nil
		case PresetThisMonth:
			first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			last := first.AddDate(0, 1, -1)
			return newRange(first, last), nil
		default:
			return Range{}, fmt.Errorf("unknown preset %q", preset)
		}
	}

	start := today.AddDate(0, 0, -30)
	end := today

	if startStr != "" {
		parsed, err := time.ParseInLocation(layout, startStr, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid start date %q", startStr)
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.ParseInLocation(layout, endStr, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid end date %q", endStr)
		}
		end = parsed
	}
	return newRange(start, end), nil
}

func newRange(start, end time.Time) Range {
	return Range{
		Start: start,
		End:   end.Add(24*time.Hour - time.Nanosecond),
	}
}
