package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/board"
	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

var (
	watchVehicles []string
	watchCompact  bool
	watchAll      bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [station]...",
	Short: "Show a refreshing departure board",
	Long: `Show a departure board for the configured stations that refreshes until
interrupted with Ctrl-C.

Departures are fetched every update_interval_seconds and the remaining
times are redrawn every redraw_interval_seconds. Departures that leave
before a station can be reached (min_reach_seconds) are shown in red,
those beyond max_wait_seconds are hidden unless --all is given.

Examples:
  bvg watch                                   # Stations from the config file
  bvg watch Hermannplatz Sonnenallee          # Ad-hoc stations
  bvg watch --compact --vehicle BUS,U`,
	Aliases: []string{"w", "board"},
	RunE:    runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchVehicles, "vehicle", nil, "Vehicles to query (S, U, TRAM, BUS, FERRY, RB, IC)")
	watchCmd.Flags().BoolVar(&watchCompact, "compact", false, "Narrow table without origin and fetch time")
	watchCmd.Flags().BoolVar(&watchAll, "all", false, "Also show departures beyond the wait limit")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	stations := args
	if len(stations) == 0 {
		stations = cfg.StationNames()
	}
	if len(stations) == 0 {
		return fmt.Errorf("provide station names or configure stations")
	}

	vehicles, err := vehiclesFor(watchVehicles)
	if err != nil {
		return err
	}

	cache := api.NewResponseCache(cfg.UpdateInterval())
	w := &watcher{
		out:      cmd.OutOrStdout(),
		stations: board.Stations(newClient(), stations, vehicles, cfg.Limit, cache),
		policy:   board.NewPolicy(cfg),
		compact:  watchCompact || cfg.Compact,
		all:      watchAll,
	}
	return w.run(cmd.Context(), cfg.RedrawInterval())
}

type watcher struct {
	out      io.Writer
	stations []board.Station
	policy   board.Policy
	compact  bool
	all      bool

	// last successful response per station, shown again while fetching fails
	lastGood map[string]board.StationResult
}

func (w *watcher) run(ctx context.Context, redraw time.Duration) error {
	ticker := time.NewTicker(redraw)
	defer ticker.Stop()

	for {
		w.draw(ctx)

		select {
		case <-ctx.Done():
			log.Debug().Msg("Stopping departure board")
			return nil
		case <-ticker.C:
		}
	}
}

func (w *watcher) draw(ctx context.Context) {
	result := board.Collect(ctx, w.stations, 0)
	if ctx.Err() != nil {
		return
	}
	now := time.Now().In(api.Location)

	if w.lastGood == nil {
		w.lastGood = make(map[string]board.StationResult)
	}

	merged := model.Empty()
	var failed, stale []board.StationResult
	for _, st := range result.Stations {
		show := st
		if st.Response.OK() {
			w.lastGood[st.Name] = st
		} else {
			failed = append(failed, st)
			prev, ok := w.lastGood[st.Name]
			if !ok {
				continue
			}
			stale = append(stale, prev)
			show = prev
		}
		if err := merged.Merge(show.Response); err != nil {
			log.Error().Err(err).Str("station", st.Name).Msg("Could not merge station response")
		}
	}

	rows := board.Rows(merged, w.policy, now)
	if !w.all {
		rows = board.Visible(rows)
	}

	// clear screen, cursor home
	fmt.Fprint(w.out, "\033[H\033[2J")
	format.Board(w.out, rows, format.BoardOptions{
		Now:     now,
		Status:  status(failed, stale),
		Compact: w.compact,
	})
}

// status names the stations that could not be fetched and, when older data is shown
// instead, the time that data is from.
func status(failed, stale []board.StationResult) string {
	if len(failed) == 0 {
		return ""
	}

	names := make([]string, 0, len(failed))
	for _, f := range failed {
		names = append(names, f.Name)
	}
	msg := "failed to grab data for " + strings.Join(names, ", ")

	if len(stale) > 0 {
		oldest := stale[0].FetchedAt
		for _, s := range stale[1:] {
			if s.FetchedAt.Before(oldest) {
				oldest = s.FetchedAt
			}
		}
		msg += ", using data from " + format.HourTime(oldest.In(api.Location))
	}
	return msg
}
