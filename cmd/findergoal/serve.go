package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/findergoal/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roster pipeline and pitch search over HTTP",
		Long: `Serve the roster pipeline and pitch search over HTTP.

Endpoints:
  GET  /health
  POST /api/v1/roster/validate
  POST /api/v1/roster/extract
  POST /api/v1/roster/draft
  GET  /api/v1/pitches?q=<place>`,
		RunE: runServe,
	}
	cmd.Flags().Int("port", 0, "Port to listen on (default from server.port)")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	pitches, release, err := newGeoService(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	srv := server.New(server.Options{
		Pipeline:       pipeline,
		Pitches:        pitches,
		Logger:         slog.Default(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
}
