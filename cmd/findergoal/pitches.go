package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/findergoal/internal/cli"
	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/geo"
)

func pitchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitches <place>",
		Short: "Find soccer pitches near a place",
		Example: `  findergoal pitches "Chapinero, Bogotá"
  findergoal pitches --radius 5000 Medellín`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPitches,
	}
	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().Int("radius", 0, "Search radius in meters (default from geo.radius)")
	return cmd
}

func runPitches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if radius, _ := cmd.Flags().GetInt("radius"); radius > 0 {
		cfg.Geo.Radius = radius
	}

	svc, release, err := newGeoService(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	query := strings.Join(args, " ")

	var result geo.SearchResult
	err = cli.Spin(ctx, cmd.ErrOrStderr(), "Buscando canchas...", func(ctx context.Context) error {
		var searchErr error
		result, searchErr = svc.Search(ctx, query)
		return searchErr
	})
	if errors.Is(err, geo.ErrPlaceNotFound) {
		return common.NewUserError(fmt.Sprintf("no place found for %q", query), err)
	}
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderPitches(result))
	return err
}
