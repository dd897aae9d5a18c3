package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/config"
)

var (
	jsonOutput bool
	configPath string
	debug      bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bvg",
	Short: "Berlin public transport departures CLI",
	Long: `bvg: a command-line interface for departures of Berlin's public transport (BVG).

Query live and scheduled departures for one or more stations, watch a
refreshing departure board, or serve departures as JSON over HTTP.

No API key required. Data scraped from the BVG mobile site.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/machine consumption)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $BVG_CONFIG, ./bvg.yml or ~/.config/bvg/bvg.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	setupLogging()

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func setupLogging() {
	if os.Getenv("BVG_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if debug || os.Getenv("BVG_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func newClient() *api.Client {
	return api.NewClientWithOptions(api.ClientOptions{
		Timeout:      cfg.Timeout(),
		ActualURL:    cfg.ActualURL,
		ScheduledURL: cfg.ScheduledURL,
	})
}

// vehiclesFor prefers the flag value and falls back to the configured vehicles.
func vehiclesFor(flag []string) (api.Vehicle, error) {
	if len(flag) > 0 {
		return api.ParseVehicles(flag)
	}
	return api.ParseVehicles(cfg.Vehicles)
}

// limitFor prefers a positive flag value and falls back to the configured limit.
func limitFor(flag int) int {
	if flag > 0 {
		return flag
	}
	return cfg.Limit
}
