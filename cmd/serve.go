package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/bvggrabber/bvg-cli/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve departures as JSON over HTTP",
	Long: `Serve departures as JSON over HTTP.

Endpoints:
  GET /departures?station=<name>[&station=<name>][&vehicle=S,U][&line=M29][&dest=..][&reference=true]
  GET /version

Responses are cached for update_interval_seconds.

Examples:
  bvg serve
  bvg serve --listen 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	vehicles, err := vehiclesFor(nil)
	if err != nil {
		return err
	}

	s := &server.Server{
		Client:   newClient(),
		Cache:    api.NewResponseCache(cfg.UpdateInterval()),
		Vehicles: vehicles,
		Limit:    cfg.Limit,
		Version:  Version,
	}
	app := s.App()

	go func() {
		<-cmd.Context().Done()
		log.Info().Msg("Shutting down server")
		_ = app.Shutdown()
	}()

	log.Info().Str("listen", serveListen).Msg("Serving departures")
	return app.Listen(serveListen)
}
