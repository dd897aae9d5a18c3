package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bvggrabber/bvg-cli/internal/model"
)

// DefaultLimit is the number of departures requested per query.
const DefaultLimit = 9

// Query fetches the departures of one station. Failures are reported through the
// returned response, never as a Go error.
type Query interface {
	Call(ctx context.Context) *model.Response
	Station() string
	String() string
}

// ActualQuery asks the real-time board, which covers buses.
type ActualQuery struct {
	Client      *Client
	StationName string
	Limit       int
}

func (q ActualQuery) Station() string { return q.StationName }

func (q ActualQuery) String() string {
	return fmt.Sprintf("actual departures for %s (limit %d)", q.StationName, q.Limit)
}

func (q ActualQuery) Call(ctx context.Context) *model.Response {
	encoded, err := encodeStation(q.StationName)
	if err != nil {
		return model.NewErrorResponse(q.StationName, err)
	}

	params := url.Values{}
	params.Set("input", encoded)

	doc, err := q.Client.get(ctx, q.Client.actualURL, params)
	if err != nil {
		log.Warn().Err(err).Str("station", q.StationName).Msg("Actual departure query failed")
		return model.NewErrorResponse(q.StationName, err)
	}

	return parseActual(doc, q.StationName, q.Limit, q.Client.clock())
}

// ScheduledQuery asks the timetable board for the given vehicles.
type ScheduledQuery struct {
	Client      *Client
	StationName string
	Vehicles    Vehicle
	Limit       int
}

func (q ScheduledQuery) Station() string { return q.StationName }

func (q ScheduledQuery) String() string {
	return fmt.Sprintf("scheduled departures for %s (%s, limit %d)", q.StationName, q.Vehicles, q.Limit)
}

func (q ScheduledQuery) Call(ctx context.Context) *model.Response {
	encoded, err := encodeStation(q.StationName)
	if err != nil {
		return model.NewErrorResponse(q.StationName, err)
	}

	now := q.Client.clock()
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("input", encoded)
	params.Set("time", now.Format(model.HourFormat))
	params.Set("date", now.Format(model.DateFormat))
	params.Set("productsFilter", q.Vehicles.ProductsFilter())
	params.Set("maxJourneys", strconv.Itoa(limit))
	params.Set("start", "yes")

	doc, err := q.Client.get(ctx, q.Client.scheduledURL, params)
	if err != nil {
		log.Warn().Err(err).Str("station", q.StationName).Msg("Scheduled departure query failed")
		return model.NewErrorResponse(q.StationName, err)
	}

	return parseScheduled(doc, q.StationName, now)
}

// QueriesFor picks the queries needed to cover vehicles at a station. Buses only show
// up on the actual board, everything else comes from the scheduled board. With no
// vehicles selected the actual board is used.
func QueriesFor(client *Client, station string, vehicles Vehicle, limit int) []Query {
	var queries []Query

	if scheduled := vehicles &^ VehicleBus; scheduled != 0 {
		queries = append(queries, ScheduledQuery{
			Client:      client,
			StationName: station,
			Vehicles:    scheduled,
			Limit:       limit,
		})
	}

	if vehicles == 0 || vehicles.Has(VehicleBus) {
		queries = append(queries, ActualQuery{
			Client:      client,
			StationName: station,
			Limit:       limit,
		})
	}

	return queries
}

// Fetch runs the queries in order and merges their results. The first failed query
// decides the result.
func Fetch(ctx context.Context, queries []Query) *model.Response {
	merged := model.Empty()
	for _, q := range queries {
		start := time.Now()
		resp := q.Call(ctx)

		log.Debug().
			Str("query", q.String()).
			Bool("ok", resp.OK()).
			Int("departures", resp.Count()).
			Str("latency", time.Since(start).String()).
			Msg("Query finished")

		if !resp.OK() {
			return resp
		}
		if err := merged.Merge(resp); err != nil {
			return model.NewErrorResponse(q.Station(), err)
		}
	}
	return merged
}

// FetchedAt is the oldest fetch time of the queries' data. Queries that do not remember
// when they fetched count as fetched at now.
func FetchedAt(queries []Query, now time.Time) time.Time {
	oldest := now
	for _, q := range queries {
		timed, ok := q.(interface{ FetchedAt() (time.Time, bool) })
		if !ok {
			continue
		}
		if at, ok := timed.FetchedAt(); ok && at.Before(oldest) {
			oldest = at
		}
	}
	return oldest
}
