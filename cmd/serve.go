package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection engine as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from settings, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := settings.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	opts := server.Options{
		Engine:          newEngine(),
		Parser:          newParser(),
		DefaultScenario: scenarioName(),
		Logger:          newLogger(),
		MonteCarlo: calculation.MonteCarloConfig{
			NumSimulations: settings.MonteCarlo.Simulations,
			Seed:           settings.MonteCarlo.Seed,
			Workers:        settings.MonteCarlo.Workers,
		},
	}
	lib, err := openLibrary()
	if err != nil {
		opts.Logger.Warnf("serving without scenario library: %v", err)
	} else {
		defer lib.Close()
		opts.Library = lib
	}

	return server.New(opts).ListenAndServe(cmd.Context(), addr)
}
