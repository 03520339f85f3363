package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/findergoal/internal/cli"
	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/config"
	"github.com/Veraticus/findergoal/internal/roster"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check whether a text looks like a match roster",
		Long: `Check whether a text looks like a match roster without calling the model.

Reads the file given as argument, or stdin when none is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().Bool("json", false, "Print the verdict as JSON")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := cli.ReadSource(cmd.Context(), firstArg(args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	verdict := roster.Verdict(text)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), verdict)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderValidation(verdict))
	return err
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract match details from a pasted roster",
		Long: `Extract date, time, location, price and players from a pasted roster.

The text is validated first; texts that do not look like a roster are rejected
without calling the model. The result is shown as a match draft with the team
format and capacity resolved. Use --submit to create the match on the
FinderGoal API.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}
	cmd.Flags().Bool("json", false, "Print the draft as JSON")
	cmd.Flags().Bool("submit", false, "Create the match on the FinderGoal API")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := cli.ReadSource(ctx, firstArg(args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	var extract roster.MatchExtract
	err = cli.Spin(ctx, cmd.ErrOrStderr(), "Leyendo el partido...", func(ctx context.Context) error {
		var procErr error
		extract, procErr = pipeline.Process(ctx, text)
		return procErr
	})
	if err != nil {
		return extractionUserError(err)
	}

	draft := roster.BuildDraft(extract)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), draft); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderDraft(draft)); err != nil {
		return err
	}
	for _, warning := range cli.DraftWarnings(draft) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}

	if submit, _ := cmd.Flags().GetBool("submit"); submit {
		return submitDraft(ctx, cmd, cfg, draft, asJSON)
	}
	return nil
}

func submitDraft(ctx context.Context, cmd *cobra.Command, cfg config.Config, draft roster.MatchDraft, quiet bool) error {
	local, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer local.Close()

	client, err := newAPIClient(cfg, local.state)
	if err != nil {
		return err
	}

	created, err := client.CreateMatch(ctx, draft.Request())
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return common.NewUserError("sign in first with: findergoal login --token <token>", err)
		}
		return fmt.Errorf("failed to create match: %w", err)
	}

	local.state.PutMatch(created)
	if err := local.save(ctx); err != nil {
		return err
	}

	if !quiet {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Match created: "+created.ID))
	}
	return nil
}

// extractionUserError maps pipeline failures to what the user is told. The
// diagnostic detail only goes to the log.
func extractionUserError(err error) error {
	if errors.Is(err, roster.ErrRosterRejected) {
		return common.NewUserError("the text does not look like a match roster (try: findergoal validate)", nil)
	}

	var extractionErr *roster.ExtractionError
	if errors.As(err, &extractionErr) {
		slog.Debug("extraction failed", "kind", extractionErr.Kind.String(), "detail", extractionErr.Detail())
		return common.NewUserError(roster.UserMessage, nil)
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
