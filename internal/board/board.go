package board

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

// DefaultWorkers bounds the number of stations fetched at once.
const DefaultWorkers = 4

// Station is one stop on the board together with the queries that cover it.
type Station struct {
	Name    string
	Queries []api.Query
}

// Stations builds the queries for every station name. With a non-nil cache the queries
// are answered from it while fresh.
func Stations(client *api.Client, names []string, vehicles api.Vehicle, limit int, cache *api.ResponseCache) []Station {
	stations := make([]Station, 0, len(names))
	for _, name := range names {
		queries := api.QueriesFor(client, name, vehicles, limit)
		if cache != nil {
			for i, q := range queries {
				queries[i] = cache.Wrap(q)
			}
		}
		stations = append(stations, Station{Name: name, Queries: queries})
	}
	return stations
}

// Failed is a station whose query did not succeed.
type Failed struct {
	Station  string
	Response *model.Response
}

// StationResult is the response of one station and when its data was fetched.
type StationResult struct {
	Name      string
	Response  *model.Response
	FetchedAt time.Time
}

// Result is the merged response of all stations that succeeded, in station order.
// Stations holds every station's own response, failed ones included.
type Result struct {
	Response *model.Response
	Failed   []Failed
	Stations []StationResult
}

// OK reports whether every station succeeded.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// Collect fetches all stations concurrently and merges their responses in station order
// once every fetch has finished. Failed stations are left out of the merge.
func Collect(ctx context.Context, stations []Station, workers int) Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	mapper := iter.Mapper[Station, *model.Response]{MaxGoroutines: workers}
	responses := mapper.Map(stations, func(s *Station) *model.Response {
		return api.Fetch(ctx, s.Queries)
	})

	now := time.Now().In(api.Location)
	result := Result{Response: model.Empty(), Stations: make([]StationResult, 0, len(stations))}
	for i, resp := range responses {
		name := stations[i].Name
		result.Stations = append(result.Stations, StationResult{
			Name:      name,
			Response:  resp,
			FetchedAt: api.FetchedAt(stations[i].Queries, now),
		})
		if !resp.OK() {
			log.Warn().Err(resp.Err()).Str("station", name).Msg("Station query failed")
			result.Failed = append(result.Failed, Failed{Station: name, Response: resp})
			continue
		}
		if err := result.Response.Merge(resp); err != nil {
			log.Error().Err(err).Str("station", name).Msg("Could not merge station response")
			result.Failed = append(result.Failed, Failed{Station: name, Response: model.NewErrorResponse(name, err)})
		}
	}

	result.Response.Sort()
	return result
}
