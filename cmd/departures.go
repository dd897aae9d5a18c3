package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/board"
	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

var (
	depVehicles      []string
	depLimit         int
	depLine          string
	depDest          string
	depOutput        string
	depWithReference bool
)

var departuresCmd = &cobra.Command{
	Use:   "departures [station]...",
	Short: "Get departures from one or more stations",
	Long: `Get departures from one or more stations. Without arguments the stations
from the config file are used.

Buses come from the live board, all other vehicles from the timetable.
When several stations are given they are fetched in parallel and listed
in the order given.

Examples:
  bvg departures "S+U Zoologischer Garten"              # Buses at Zoo
  bvg departures Hermannplatz --vehicle U,BUS            # U-Bahn and buses
  bvg departures Hermannplatz --line M29                 # Only bus M29
  bvg departures Zoo Alexanderplatz --json               # JSON for agents
  bvg departures Zoo --output departures.json            # JSON into a file`,
	Aliases: []string{"dep", "d"},
	RunE:    runDepartures,
}

func init() {
	departuresCmd.Flags().StringSliceVar(&depVehicles, "vehicle", nil, "Vehicles to query (S, U, TRAM, BUS, FERRY, RB, IC)")
	departuresCmd.Flags().IntVar(&depLimit, "limit", 0, "Max departures per query (default from config)")
	departuresCmd.Flags().StringVar(&depLine, "line", "", "Filter by line (e.g. M29, S5)")
	departuresCmd.Flags().StringVar(&depDest, "dest", "", "Filter by destination (substring)")
	departuresCmd.Flags().StringVarP(&depOutput, "output", "o", "-", "Write JSON to this file ('-' for stdout)")
	departuresCmd.Flags().BoolVar(&depWithReference, "with-reference", false, "Include the fetch time of each departure in JSON")

	rootCmd.AddCommand(departuresCmd)
}

func runDepartures(cmd *cobra.Command, args []string) error {
	stations := args
	if len(stations) == 0 {
		stations = cfg.StationNames()
	}
	if len(stations) == 0 {
		return fmt.Errorf("provide a station name or configure stations (use 'bvg search <name>' to find stations)")
	}

	vehicles, err := vehiclesFor(depVehicles)
	if err != nil {
		return err
	}

	result := board.Collect(cmd.Context(), board.Stations(newClient(), stations, vehicles, limitFor(depLimit), nil), 0)

	stderr := cmd.ErrOrStderr()
	for _, f := range result.Failed {
		color.New(color.FgRed).Fprintf(stderr, "✗ %s: %v\n", f.Station, f.Response.Err())
	}

	resp := result.Response
	if len(result.Failed) == len(stations) {
		resp = result.Failed[0].Response
	}
	api.FilterDepartures(resp, depLine, depDest)

	if err := writeDepartures(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("no station could be queried: %w", resp.Err())
	}
	return nil
}

func writeDepartures(stdout io.Writer, resp *model.Response) error {
	if !jsonOutput && depOutput == "-" {
		format.Departures(stdout, resp)
		return nil
	}

	body, err := resp.Serialize(model.SerializeOptions{IncludeReference: depWithReference})
	if err != nil {
		return fmt.Errorf("serializing departures: %w", err)
	}

	if depOutput == "-" || depOutput == "" {
		return format.JSON(stdout, body)
	}

	f, err := os.Create(depOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return format.JSON(f, body)
}
