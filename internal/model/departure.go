package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

const (
	FullFormat = "2006-01-02 15:04:05"
	HourFormat = "15:04"
	DateFormat = "02.01.2006"
)

// Departure is a single departure from a station. It is immutable once built.
type Departure struct {
	start     string
	end       string
	line      string
	reference time.Time
	when      time.Time
	remaining int64
}

type departureSettings struct {
	reference time.Time
	rollover  bool
}

// DepartureOption changes how NewDeparture interprets its time value.
type DepartureOption struct {
	f func(*departureSettings)
}

// WithReference sets the instant remaining time is measured from. Defaults to time.Now().
func WithReference(reference time.Time) DepartureOption {
	return DepartureOption{
		func(s *departureSettings) {
			s.reference = reference
		},
	}
}

// WithoutDayRollover keeps time-of-day strings on the reference date even when they lie
// far in the past.
func WithoutDayRollover() DepartureOption {
	return DepartureOption{
		func(s *departureSettings) {
			s.rollover = false
		},
	}
}

// NewDeparture builds a Departure. when may be epoch seconds (int, int64, float64),
// a time.Time or a time string as scraped from a departure board.
func NewDeparture(start, end string, when any, line string, options ...DepartureOption) (Departure, error) {
	settings := departureSettings{rollover: true}
	for _, option := range options {
		option.f(&settings)
	}
	if settings.reference.IsZero() {
		settings.reference = time.Now()
	}

	normalized, err := NormalizeTime(when, settings.reference, settings.rollover)
	if err != nil {
		return Departure{}, err
	}

	remaining, err := Remaining(settings.reference, normalized)
	if err != nil {
		return Departure{}, err
	}

	return Departure{
		start:     start,
		end:       end,
		line:      line,
		reference: settings.reference,
		when:      normalized,
		remaining: remaining,
	}, nil
}

func (d Departure) Start() string        { return d.start }
func (d Departure) End() string          { return d.end }
func (d Departure) Line() string         { return d.line }
func (d Departure) Reference() time.Time { return d.reference }
func (d Departure) When() time.Time      { return d.when }

// RemainingSeconds is the minute-floored time left between Reference and When.
func (d Departure) RemainingSeconds() int64 {
	return d.remaining
}

// RemainingAt recomputes the remaining seconds against another instant, for displays
// that keep running after the departure was fetched.
func (d Departure) RemainingAt(now time.Time) int64 {
	remaining, err := Remaining(now, d.when)
	if err != nil {
		return d.remaining
	}
	return remaining
}

// Equal reports whether both departures leave at the same remaining time for the same
// destination. Start and line are not compared; two such departures are interchangeable
// on a board even though they are not the same vehicle.
func (d Departure) Equal(other Departure) bool {
	return d.remaining == other.remaining && strings.ToLower(d.end) == strings.ToLower(other.end)
}

func (d Departure) String() string {
	return fmt.Sprintf("Start: %s, End: %s, when: %s, now: %s, line: %s",
		d.start, d.end, d.when.Format(HourFormat), d.reference.Format(HourFormat), d.line)
}

// CompareDepartures orders by remaining seconds only. Ties have no defined order.
func CompareDepartures(a, b Departure) int {
	switch {
	case a.remaining < b.remaining:
		return -1
	case a.remaining > b.remaining:
		return 1
	default:
		return 0
	}
}

// SortDepartures sorts departures in place by remaining time.
func SortDepartures(departures []Departure) {
	slices.SortStableFunc(departures, CompareDepartures)
}
