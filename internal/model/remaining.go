package model

import (
	"fmt"
	"time"
)

// Remaining returns the seconds between reference and when, floored to a whole minute
// towards negative infinity: -1s gives -60, 59s gives 0.
func Remaining(reference, when time.Time) (int64, error) {
	if reference.IsZero() || when.IsZero() {
		return 0, fmt.Errorf("%w: remaining time needs two instants", ErrInvalidArgument)
	}
	return floorMinutes(when.Sub(reference)), nil
}

func floorMinutes(d time.Duration) int64 {
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int64(m) * 60
}
