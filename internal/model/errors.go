package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTimeFormat is returned when a raw departure time is neither an epoch
	// value, a time.Time nor a parseable string.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidArgument is returned when remaining time is computed on zero instants.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrAmbiguousStation = errors.New("ambiguous station")
	ErrStationNotFound  = errors.New("station not found")
	ErrUpstreamFault    = errors.New("upstream fault")

	// ErrInvalidState is returned when merging responses where either side failed.
	ErrInvalidState = errors.New("invalid response state")
	// ErrTypeMismatch is returned when merging with a missing response.
	ErrTypeMismatch = errors.New("type mismatch")
)

// QueryError describes why a station query did not produce departures.
type QueryError struct {
	Kind       error
	Station    string
	Candidates []string
	Cause      error
}

func (e *QueryError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrAmbiguousStation):
		return fmt.Sprintf("%s, candidates: %s", e.prefix(), strings.Join(e.Candidates, ", "))
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.prefix(), e.Cause)
	default:
		return e.prefix()
	}
}

func (e *QueryError) prefix() string {
	kind := e.Kind
	if kind == nil {
		kind = ErrUpstreamFault
	}
	if e.Station == "" {
		return kind.Error()
	}
	return fmt.Sprintf("%s %q", kind.Error(), e.Station)
}

func (e *QueryError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
