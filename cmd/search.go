package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/format"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for stations by name",
	Long: `Search for stations by name. The BVG site either knows the name, or
suggests the stations it could mean.

Examples:
  bvg search Zoo
  bvg search "Hermannplatz"
  bvg search Alex --json`,
	Aliases: []string{"find", "s"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

type searchResult struct {
	Query      string   `json:"query"`
	Station    string   `json:"station,omitempty"`
	Departures int      `json:"departures"`
	Candidates []string `json:"candidates,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	q := api.ActualQuery{Client: newClient(), StationName: query, Limit: cfg.Limit}

	result, err := search(q.Call(cmd.Context()), query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return format.JSON(out, result)
	}

	switch {
	case result.Station != "":
		fmt.Fprintf(out, "Found station %q (%d upcoming departure(s))\n", result.Station, result.Departures)
	case len(result.Candidates) > 0:
		format.Candidates(out, result.Candidates)
	default:
		fmt.Fprintf(out, "No stations found matching %q\n", query)
	}
	return nil
}

// search turns a query response into a search result. Ambiguous and unknown names are
// results; other failures are errors.
func search(resp *model.Response, query string) (searchResult, error) {
	result := searchResult{Query: query}

	switch outcome := resp.Departures().(type) {
	case model.Success:
		result.Station = query
		result.Departures = resp.Count()
	case model.Failure:
		switch {
		case errors.Is(outcome.Err, model.ErrAmbiguousStation):
			result.Candidates = outcome.Err.Candidates
		case errors.Is(outcome.Err, model.ErrStationNotFound):
		default:
			return result, fmt.Errorf("searching stations: %w", outcome.Err)
		}
	}
	return result, nil
}
