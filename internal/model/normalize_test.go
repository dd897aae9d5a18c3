package model

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeTime_Rollover(t *testing.T) {
	reference := time.Date(2013, 1, 2, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		rollover bool
		want     time.Time
	}{
		{"early morning is next day", "00:01:02", true, time.Date(2013, 1, 3, 0, 1, 2, 0, time.UTC)},
		{"early morning without rollover", "00:01:02", false, time.Date(2013, 1, 2, 0, 1, 2, 0, time.UTC)},
		{"exactly twelve hours ago stays", "11:59:00", true, time.Date(2013, 1, 2, 11, 59, 0, 0, time.UTC)},
		{"just over twelve hours ago moves", "11:58:59", true, time.Date(2013, 1, 3, 11, 58, 59, 0, time.UTC)},
		{"a few hours ago stays", "20:15", true, time.Date(2013, 1, 2, 20, 15, 0, 0, time.UTC)},
		{"later today", "23:59:30", true, time.Date(2013, 1, 2, 23, 59, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTime(tt.raw, reference, tt.rollover)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got.Format(FullFormat), tt.want.Format(FullFormat))
			}
		})
	}
}

func TestNormalizeTime_NoRolloverForInstants(t *testing.T) {
	reference := time.Date(2013, 1, 2, 23, 59, 0, 0, time.UTC)
	when := time.Date(2013, 1, 2, 0, 1, 2, 0, time.UTC)

	got, err := NormalizeTime(when, reference, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(when) {
		t.Errorf("time.Time input changed: got %s, want %s", got.Format(FullFormat), when.Format(FullFormat))
	}

	epoch := when.Unix()
	got, err = NormalizeTime(epoch, reference, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(when) {
		t.Errorf("epoch input changed: got %s, want %s", got.Format(FullFormat), when.Format(FullFormat))
	}
}

func TestNormalizeTime_Epoch(t *testing.T) {
	reference := time.Unix(1357092240, 0).In(time.UTC)

	got, err := NormalizeTime(float64(1357092240)+45.5, reference, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Unix(1357092285, int64(500*time.Millisecond))
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	got, err = NormalizeTime(1357092240, reference, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(reference) {
		t.Errorf("got %s, want %s", got, reference)
	}
}

func TestNormalizeTime_Text(t *testing.T) {
	reference := time.Date(2013, 1, 2, 3, 4, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"estimate marker and whitespace", "16:15\n \t*", time.Date(2013, 1, 2, 16, 15, 0, 0, time.UTC)},
		{"trailing star", "03:10*", time.Date(2013, 1, 2, 3, 10, 0, 0, time.UTC)},
		{"full date", "2013-01-02 03:04:45", time.Date(2013, 1, 2, 3, 4, 45, 0, time.UTC)},
		{"unpadded minute", "9:5", time.Date(2013, 1, 2, 9, 5, 0, 0, time.UTC)},
		{"unpadded hour and minute", "1:2", time.Date(2013, 1, 2, 1, 2, 0, 0, time.UTC)},
		{"unpadded minute at noon", "12:3", time.Date(2013, 1, 2, 12, 3, 0, 0, time.UTC)},
		{"unpadded seconds", "16:5:7", time.Date(2013, 1, 2, 16, 5, 7, 0, time.UTC)},
		{"date without year", "Jan 2 09:05", time.Date(2013, 1, 2, 9, 5, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTime(tt.raw, reference, true)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got.Format(FullFormat), tt.want.Format(FullFormat))
			}
		})
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	reference := time.Date(2013, 1, 2, 3, 4, 0, 0, time.UTC)

	for _, raw := range []any{"foo", "", " *", "0001-01-01 00:00:00", "1900-05-06 07:08:09", []string{"when"}, nil, true} {
		if _, err := NormalizeTime(raw, reference, true); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("NormalizeTime(%#v) error = %v, want ErrInvalidTimeFormat", raw, err)
		}
	}

	if _, err := NormalizeTime(time.Time{}, reference, true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero time error = %v, want ErrInvalidArgument", err)
	}
}

func TestNormalizeTime_RemainingStaysNearReference(t *testing.T) {
	reference := time.Date(2013, 1, 2, 8, 0, 0, 0, time.UTC)

	for _, raw := range []string{"1:2", "9:5", "12:3", "Jan 2 09:05"} {
		dep, err := NewDeparture("A", "B", raw, "L", WithReference(reference))
		if err != nil {
			t.Errorf("NewDeparture(%q) error = %v", raw, err)
			continue
		}
		if dep.When().Year() != reference.Year() {
			t.Errorf("NewDeparture(%q) when = %s, want a time in %d", raw, dep.When().Format(FullFormat), reference.Year())
		}
		if r := dep.RemainingSeconds(); r < -24*3600 || r > 24*3600 {
			t.Errorf("NewDeparture(%q) remaining = %d, want within a day", raw, r)
		}
	}
}
