package format

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
)

// BoardRow is one line of the departure board.
type BoardRow struct {
	From      string
	To        string
	At        time.Time
	FetchedAt time.Time
	Remaining int64
	Line      string
	TooSoon   bool
	TooLate   bool
}

// BoardOptions controls the board rendering.
type BoardOptions struct {
	Now     time.Time
	Status  string
	Compact bool
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.ReplaceAllString(s, ""))
}

// rowStyle highlights reachable rows in green. Rows that cannot be reached in time are red
// and rows beyond the wait limit are dimmed.
func rowStyle(r BoardRow) *color.Color {
	switch {
	case r.TooSoon:
		return red
	case r.TooLate:
		return dim
	}
	return green
}

// Board renders the rows as a table, styled by rowStyle. Status is shown in the header line.
func Board(w io.Writer, rows []BoardRow, opts BoardOptions) {
	header := fmt.Sprintf("BVG departures at %s", FullTime(opts.Now))
	bold.Fprint(w, header)
	if opts.Status != "" {
		red.Fprintf(w, "  %s", opts.Status)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(rows) == 0 {
		dim.Fprintln(w, "No departures.")
		return
	}

	columns := []interface{}{"From", "To", "At", "Fetch-Time", "In", "Line"}
	if opts.Compact {
		columns = []interface{}{"To", "At", "In", "Line"}
	}

	tbl := table.New(columns...).
		WithWriter(w).
		WithWidthFunc(visibleWidth).
		WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc())

	for _, r := range rows {
		style := rowStyle(r)
		line := SimplifyLine(r.Line)
		in := Duration(r.Remaining)
		if opts.Compact {
			tbl.AddRow(
				style.Sprint(SimplifyLocation(r.To)),
				HourTime(r.At),
				style.Sprint(in),
				line,
			)
			continue
		}
		tbl.AddRow(
			SimplifyLocation(r.From),
			style.Sprint(SimplifyLocation(r.To)),
			HourTime(r.At),
			HourTime(r.FetchedAt),
			style.Sprint(in),
			line,
		)
	}

	tbl.Print()
}
