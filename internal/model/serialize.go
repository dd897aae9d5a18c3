package model

import (
	"encoding/json"

	"github.com/liip/sheriff"
)

// SerializeOptions selects the fields written by the serializers. The reference instant
// ("now") is left out unless IncludeReference is set, so serializing the same departure
// twice gives the same output.
type SerializeOptions struct {
	IncludeReference bool
}

func (o SerializeOptions) sheriffOptions() *sheriff.Options {
	groups := []string{"basic"}
	if o.IncludeReference {
		groups = append(groups, "reference")
	}
	return &sheriff.Options{Groups: groups}
}

type departureView struct {
	Start     string `json:"start" groups:"basic"`
	End       string `json:"end" groups:"basic"`
	Line      string `json:"line" groups:"basic"`
	WhenFull  string `json:"when_full" groups:"basic"`
	WhenHour  string `json:"when_hour" groups:"basic"`
	NowFull   string `json:"now_full" groups:"reference"`
	NowHour   string `json:"now_hour" groups:"reference"`
	Remaining int64  `json:"remaining" groups:"basic"`
}

type stationView struct {
	Station    string          `json:"station" groups:"basic"`
	Departures []departureView `json:"departures" groups:"basic"`
}

func newDepartureView(d Departure) departureView {
	return departureView{
		Start:     d.start,
		End:       d.end,
		Line:      d.line,
		WhenFull:  d.when.Format(FullFormat),
		WhenHour:  d.when.Format(HourFormat),
		NowFull:   d.reference.Format(FullFormat),
		NowHour:   d.reference.Format(HourFormat),
		Remaining: d.remaining,
	}
}

// Serialize reduces the departure to a JSON-ready value.
func (d Departure) Serialize(opts SerializeOptions) (interface{}, error) {
	return sheriff.Marshal(opts.sheriffOptions(), newDepartureView(d))
}

// Serialize reduces the response to a JSON-ready value: a list of station groups when the
// query succeeded, the error text otherwise.
func (r *Response) Serialize(opts SerializeOptions) (interface{}, error) {
	switch outcome := r.Departures().(type) {
	case Failure:
		return outcome.String(), nil
	case Success:
		stations := make([]stationView, 0, len(outcome.Groups))
		for _, group := range outcome.Groups {
			views := make([]departureView, 0, len(group.Departures))
			for _, d := range group.Departures {
				views = append(views, newDepartureView(d))
			}
			stations = append(stations, stationView{Station: group.Station, Departures: views})
		}
		return sheriff.Marshal(opts.sheriffOptions(), stations)
	}
	return nil, nil
}

func (d Departure) MarshalJSON() ([]byte, error) {
	v, err := d.Serialize(SerializeOptions{})
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (r *Response) MarshalJSON() ([]byte, error) {
	v, err := r.Serialize(SerializeOptions{})
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
