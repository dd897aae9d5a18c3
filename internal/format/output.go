package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/bvggrabber/bvg-cli/internal/model"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
	dim    = color.New(color.Faint)

	busIcon    = "🚌"
	metroIcon  = "🚇"
	trainIcon  = "🚆"
	tramIcon   = "🚋"
	shipIcon   = "⛴️"
	regionIcon = "🚄"
)

// LineMode guesses the transport mode from a BVG line label.
func LineMode(line string) string {
	l := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(l, "BUS"), strings.HasPrefix(l, "N"), strings.HasPrefix(l, "X"):
		return "BUS"
	case strings.HasPrefix(l, "TRAM"):
		return "TRAM"
	case strings.HasPrefix(l, "IC"), strings.HasPrefix(l, "EC"):
		return "IC"
	case strings.HasPrefix(l, "RE"), strings.HasPrefix(l, "RB"):
		return "RB"
	case strings.HasPrefix(l, "S"):
		return "S"
	case strings.HasPrefix(l, "U"):
		return "U"
	case strings.HasPrefix(l, "F"):
		return "FERRY"
	case strings.HasPrefix(l, "M"):
		return "TRAM"
	default:
		return "BUS"
	}
}

// ModeIcon returns the emoji icon for a transport mode.
func ModeIcon(mode string) string {
	switch strings.ToUpper(mode) {
	case "BUS":
		return busIcon
	case "U":
		return metroIcon
	case "S":
		return trainIcon
	case "TRAM":
		return tramIcon
	case "FERRY":
		return shipIcon
	case "RB", "IC":
		return regionIcon
	default:
		return "🚏"
	}
}

// JSON writes any value as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Departures prints a response in human-readable format: one block per station, or the
// error text when the query failed.
func Departures(w io.Writer, resp *model.Response) {
	switch outcome := resp.Departures().(type) {
	case model.Failure:
		red.Fprintf(w, "✗ %s\n", outcome.String())
		if len(outcome.Err.Candidates) > 0 {
			Candidates(w, outcome.Err.Candidates)
		}
	case model.Success:
		if len(outcome.Groups) == 0 {
			dim.Fprintln(w, "No departures found.")
			return
		}
		for _, group := range outcome.Groups {
			stationDepartures(w, group)
		}
	}
}

func stationDepartures(w io.Writer, group model.StationDepartures) {
	bold.Fprintf(w, "📍 %s\n", group.Station)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(group.Departures) == 0 {
		dim.Fprintln(w, "  No departures found.")
		fmt.Fprintln(w)
		return
	}

	for _, d := range group.Departures {
		icon := ModeIcon(LineMode(d.Line()))
		fmt.Fprintf(w, "  %s %-8s → %-30s %s  %s\n",
			icon, SimplifyLine(d.Line()), d.End(), HourTime(d.When()), remaining(d.RemainingSeconds()))
	}
	fmt.Fprintln(w)
}

func remaining(seconds int64) string {
	text := Duration(seconds)
	switch {
	case seconds < 0:
		return dim.Sprint(text)
	case seconds < 60:
		return green.Sprint(strings.ToUpper(text))
	case seconds <= 5*60:
		return yellow.Sprint(text)
	default:
		return cyan.Sprint(text)
	}
}

// Candidates prints the stations the site suggested for an ambiguous name.
func Candidates(w io.Writer, candidates []string) {
	yellow.Fprintf(w, "%d matching station(s):\n", len(candidates))
	for i, c := range candidates {
		bold.Fprintf(w, "  %d. ", i+1)
		fmt.Fprintln(w, c)
	}
}

// StopInfoLine is the data for a single line serving a stop.
type StopInfoLine struct {
	Designation   string   `json:"designation"`
	TransportMode string   `json:"transport_mode"`
	Destinations  []string `json:"destinations"`
}

// StopInfo prints a summary of lines serving a stop.
func StopInfo(w io.Writer, stopName string, lines []StopInfoLine) {
	if len(lines) == 0 {
		dim.Fprintf(w, "No lines currently serving %s.\n", stopName)
		dim.Fprintln(w, "(This uses live departures, try again during operating hours)")
		return
	}

	bold.Fprintf(w, "📍 %s\n", stopName)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	// Group by transport mode
	groups := make(map[string][]StopInfoLine)
	var modes []string
	for _, l := range lines {
		if _, exists := groups[l.TransportMode]; !exists {
			modes = append(modes, l.TransportMode)
		}
		groups[l.TransportMode] = append(groups[l.TransportMode], l)
	}

	for _, mode := range modes {
		bold.Fprintf(w, "\n%s %s\n", ModeIcon(mode), mode)
		for _, l := range groups[mode] {
			fmt.Fprintf(w, "  Line %-6s", l.Designation)
			if len(l.Destinations) > 0 {
				dim.Fprintf(w, "  → %s", strings.Join(l.Destinations, ", "))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}
