package board

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

// Rows flattens all station groups of resp into board rows ordered by remaining time
// at now. A failed response has no rows.
func Rows(resp *model.Response, policy Policy, now time.Time) []format.BoardRow {
	var deps []model.Departure
	for _, group := range resp.Groups() {
		deps = append(deps, group.Departures...)
	}

	slices.SortStableFunc(deps, func(a, b model.Departure) int {
		ra, rb := a.RemainingAt(now), b.RemainingAt(now)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	})

	rows := make([]format.BoardRow, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, format.BoardRow{
			From:      d.Start(),
			To:        d.End(),
			At:        d.When(),
			FetchedAt: d.Reference(),
			Remaining: d.RemainingAt(now),
			Line:      d.Line(),
			TooSoon:   policy.TooSoon(d, now),
			TooLate:   policy.TooLate(d, now),
		})
	}
	return rows
}

// Visible drops rows that are too late, keeping those too soon so they can be shown
// dimmed.
func Visible(rows []format.BoardRow) []format.BoardRow {
	return slices.DeleteFunc(slices.Clone(rows), func(r format.BoardRow) bool {
		return r.TooLate
	})
}
