package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RolloverThreshold is how far in the past a parsed time-of-day may lie before it is
// taken to mean the following day.
const RolloverThreshold = 12 * time.Hour

// Time-of-day layouts tried before the permissive parser. Their date is taken from the
// reference instant.
// "15:4" also takes unpadded cells like "9:5", which the permissive parser would read
// as month and day.
var clockLayouts = []string{"15:04", "15:04:05", "15:4", "15:4:5"}

// earliestInstant bounds parsed text; anything before it was not anchored to a date.
var earliestInstant = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// NormalizeTime converts a raw departure time into an absolute instant.
//
// Numbers are POSIX epoch seconds and time.Time values are used as given; neither gets
// day rollover. Strings lose trailing whitespace and the "*" estimate marker, are parsed
// relative to the reference date, and are moved one day forward when they lie more than
// RolloverThreshold before reference (unless rollover is false).
func NormalizeTime(raw any, reference time.Time, rollover bool) (time.Time, error) {
	loc := reference.Location()

	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidArgument)
		}
		return v, nil
	case int:
		return time.Unix(int64(v), 0).In(loc), nil
	case int64:
		return time.Unix(v, 0).In(loc), nil
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).In(loc), nil
	case string:
		when, err := parseText(v, reference)
		if err != nil {
			return time.Time{}, err
		}
		if rollover && reference.Sub(when) > RolloverThreshold {
			when = when.AddDate(0, 0, 1)
		}
		return when, nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, raw)
	}
}

func parseText(raw string, reference time.Time) (time.Time, error) {
	text := strings.TrimRight(raw, " \t\r\n*")
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty time %q", ErrInvalidTimeFormat, raw)
	}

	loc := reference.Location()
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return time.Date(reference.Year(), reference.Month(), reference.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}

	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeFormat, raw, err)
	}

	// text without a year ("Jan 2 09:05") parses into year 0
	if t.Year() == 0 {
		t = time.Date(reference.Year(), t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	if t.Before(earliestInstant) {
		return time.Time{}, fmt.Errorf("%w: %q has no usable date", ErrInvalidTimeFormat, raw)
	}
	return t, nil
}
