package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports a schedule date range that could not be resolved.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date range %q: %s", e.Input, e.Reason)
}

const dateLayout = "January 2 2006"

// ResolveRange resolves a published date range such as "February 27 - March 1"
// or "April 9 - 12" against now. The schedule never carries a year, so both
// dates land in now's year. When the resolved start has already passed and now
// is still in the first three months of the year, the schedule is assumed to
// be next season's and both dates roll forward one year.
func ResolveRange(raw string, now time.Time) (time.Time, time.Time, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, &ParseError{Input: raw, Reason: "expected a single start - end separator"}
	}

	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])
	year := now.Year()

	start, err := time.Parse(dateLayout, fmt.Sprintf("%s %d", startStr, year))
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Input: raw, Reason: fmt.Sprintf("bad start date %q", startStr)}
	}

	// A bare day on the right reuses the start month ("April 9 - 12").
	if !strings.Contains(endStr, " ") {
		endStr = fmt.Sprintf("%s %s", strings.Fields(startStr)[0], endStr)
	}

	end, err := time.Parse(dateLayout, fmt.Sprintf("%s %d", endStr, year))
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Input: raw, Reason: fmt.Sprintf("bad end date %q", endStr)}
	}

	// Schedules published before the season often list events that already
	// happened this calendar year.
	if start.Before(now) && now.Month() <= time.March {
		start = start.AddDate(1, 0, 0)
		end = end.AddDate(1, 0, 0)
	}

	return start, end, nil
}
