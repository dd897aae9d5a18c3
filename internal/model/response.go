package model

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// StationDepartures is the list of departures one station query produced.
type StationDepartures struct {
	Station    string
	Departures []Departure
}

// Response is the outcome of one or more station queries: either a list of per-station
// departure groups or the error that stopped the query.
type Response struct {
	ok     bool
	err    *QueryError
	groups []StationDepartures
}

// NewResponse builds a response for a single station. An empty station name means the
// site did not know the station.
func NewResponse(ok bool, station string, departures []Departure) *Response {
	if station == "" {
		return &Response{err: &QueryError{Kind: ErrStationNotFound}}
	}
	if !ok {
		return &Response{err: &QueryError{Kind: ErrUpstreamFault, Station: station}}
	}
	return &Response{
		ok:     true,
		groups: []StationDepartures{{Station: station, Departures: slices.Clone(departures)}},
	}
}

// NewCandidatesResponse is returned when the site offered a list of stations instead of
// departures. No candidates means the station does not exist.
func NewCandidatesResponse(station string, candidates []string) *Response {
	if len(candidates) == 0 {
		return &Response{err: &QueryError{Kind: ErrStationNotFound, Station: station}}
	}
	return &Response{err: &QueryError{
		Kind:       ErrAmbiguousStation,
		Station:    station,
		Candidates: slices.Clone(candidates),
	}}
}

// NewErrorResponse wraps a failed query. A *QueryError is kept as is, anything else
// becomes an upstream fault.
func NewErrorResponse(station string, cause error) *Response {
	if qe, ok := cause.(*QueryError); ok {
		return &Response{err: qe}
	}
	return &Response{err: &QueryError{Kind: ErrUpstreamFault, Station: station, Cause: cause}}
}

// OK reports whether the query succeeded, including stations with no departures.
func (r *Response) OK() bool {
	return r.ok
}

// Err returns the query error of a failed response and nil otherwise.
func (r *Response) Err() error {
	if r.ok {
		return nil
	}
	return r.queryError()
}

func (r *Response) queryError() *QueryError {
	if r.err == nil {
		return &QueryError{Kind: ErrUpstreamFault}
	}
	return r.err
}

// Outcome is either Success or Failure.
type Outcome interface {
	outcome()
}

type Success struct {
	Groups []StationDepartures
}

type Failure struct {
	Err *QueryError
}

func (Success) outcome() {}
func (Failure) outcome() {}

func (f Failure) String() string {
	return f.Err.Error()
}

// Departures returns Success with the station groups, or Failure carrying the error when
// the query did not succeed.
func (r *Response) Departures() Outcome {
	if !r.ok {
		return Failure{Err: r.queryError()}
	}
	return Success{Groups: r.groups}
}

// Groups returns the station groups of a successful response, nil otherwise.
func (r *Response) Groups() []StationDepartures {
	if !r.ok {
		return nil
	}
	return r.groups
}

// Merge appends the station groups of other after those of r. Both responses must have
// succeeded; nothing is merged otherwise. Merge is not safe for concurrent use on the
// same receiver.
func (r *Response) Merge(other *Response) error {
	if other == nil {
		return fmt.Errorf("%w: cannot merge a nil response", ErrTypeMismatch)
	}
	if !r.ok {
		return fmt.Errorf("%w: receiver failed: %v", ErrInvalidState, r.queryError())
	}
	if !other.ok {
		return fmt.Errorf("%w: merged response failed: %v", ErrInvalidState, other.queryError())
	}

	for _, group := range other.groups {
		r.groups = append(r.groups, StationDepartures{
			Station:    group.Station,
			Departures: slices.Clone(group.Departures),
		})
	}
	return nil
}

// Sort orders the departures of every station group by remaining time.
func (r *Response) Sort() {
	for _, group := range r.groups {
		SortDepartures(group.Departures)
	}
}

// Filter keeps only the departures keep returns true for, in every station group.
func (r *Response) Filter(keep func(Departure) bool) {
	for i := range r.groups {
		r.groups[i].Departures = slices.DeleteFunc(r.groups[i].Departures, func(d Departure) bool {
			return !keep(d)
		})
	}
}

// Count is the number of departures across all station groups.
func (r *Response) Count() int {
	n := 0
	for _, group := range r.Groups() {
		n += len(group.Departures)
	}
	return n
}

// Empty returns a successful response without station groups, to merge others into.
func Empty() *Response {
	return &Response{ok: true}
}
