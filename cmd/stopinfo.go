package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

var stopInfoCmd = &cobra.Command{
	Use:   "stop-info <station>",
	Short: "Show which lines serve a station",
	Long: `Show all lines that serve a station.

Uses the upcoming departures of every vehicle type to identify which lines
currently operate at the station. Results are grouped by transport mode.

Examples:
  bvg stop-info Hermannplatz
  bvg stop-info "S+U Alexanderplatz" --json`,
	Aliases: []string{"si", "info"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runStopInfo,
}

func init() {
	rootCmd.AddCommand(stopInfoCmd)
}

// stopInfoResult is the JSON output for stop-info.
type stopInfoResult struct {
	Stop  string                `json:"stop"`
	Lines []format.StopInfoLine `json:"lines"`
}

func runStopInfo(cmd *cobra.Command, args []string) error {
	station := strings.Join(args, " ")
	client := newClient()

	resp := api.Fetch(cmd.Context(), api.QueriesFor(client, station, api.AllVehicles, cfg.Limit))
	if !resp.OK() {
		return fmt.Errorf("fetching departures: %w", resp.Err())
	}

	var deps []model.Departure
	for _, group := range resp.Groups() {
		deps = append(deps, group.Departures...)
	}
	lines := extractLines(deps)

	if jsonOutput {
		return format.JSON(cmd.OutOrStdout(), stopInfoResult{Stop: station, Lines: lines})
	}

	format.StopInfo(cmd.OutOrStdout(), station, lines)
	return nil
}

// extractLines groups departures by line, keeping destinations in order of first
// appearance.
func extractLines(deps []model.Departure) []format.StopInfoLine {
	type lineKey struct {
		designation   string
		transportMode string
	}
	lineMap := make(map[lineKey]int)
	lines := []format.StopInfoLine{}

	for _, d := range deps {
		key := lineKey{format.SimplifyLine(d.Line()), format.LineMode(d.Line())}
		i, exists := lineMap[key]
		if !exists {
			i = len(lines)
			lineMap[key] = i
			lines = append(lines, format.StopInfoLine{
				Designation:   key.designation,
				TransportMode: key.transportMode,
			})
		}
		if d.End() != "" && !containsString(lines[i].Destinations, d.End()) {
			lines[i].Destinations = append(lines[i].Destinations, d.End())
		}
	}
	return lines
}

func containsString(s []string, str string) bool {
	for _, item := range s {
		if item == str {
			return true
		}
	}
	return false
}
