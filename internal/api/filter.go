package api

import (
	"strings"

	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

// FilterByLine keeps departures of the given line. "M29" matches both "M29" and "Bus  M29".
func FilterByLine(line string) func(model.Departure) bool {
	line = strings.TrimSpace(line)
	return func(d model.Departure) bool {
		if line == "" {
			return true
		}
		return strings.EqualFold(d.Line(), line) ||
			strings.EqualFold(format.SimplifyLine(d.Line()), line)
	}
}

// FilterByDestination keeps departures whose destination contains dest (case-insensitive).
func FilterByDestination(dest string) func(model.Departure) bool {
	dest = strings.ToLower(strings.TrimSpace(dest))
	return func(d model.Departure) bool {
		if dest == "" {
			return true
		}
		return strings.Contains(strings.ToLower(d.End()), dest)
	}
}

// FilterDepartures applies the line and destination filters to resp in place.
func FilterDepartures(resp *model.Response, line, dest string) {
	if line == "" && dest == "" {
		return
	}
	byLine, byDest := FilterByLine(line), FilterByDestination(dest)
	resp.Filter(func(d model.Departure) bool {
		return byLine(d) && byDest(d)
	})
}
