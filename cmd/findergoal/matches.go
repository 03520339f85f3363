package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/findergoal/internal/cli"
	"github.com/Veraticus/findergoal/internal/common"
)

func matchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Show and refresh your matches",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List matches from the local store",
		RunE:  runMatchesList,
	}
	list.Flags().Bool("json", false, "Print matches as JSON")

	sync := &cobra.Command{
		Use:   "sync",
		Short: "Fetch matches from the FinderGoal API into the local store",
		RunE:  runMatchesSync,
	}

	cmd.AddCommand(list, sync)
	return cmd
}

func runMatchesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	local, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer local.Close()

	matches := local.state.Snapshot().Matches

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), matches)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMatches(matches))
	return err
}

func runMatchesSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	local, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer local.Close()

	client, err := newAPIClient(cfg, local.state)
	if err != nil {
		return err
	}

	matches, err := client.ListMatches(ctx)
	if errors.Is(err, common.ErrUnauthenticated) {
		return common.NewUserError("your session expired, sign in again with: findergoal login", err)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}

	local.state.SetMatches(matches)
	if err := local.save(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Synced %d matches", len(matches))))
	return err
}
