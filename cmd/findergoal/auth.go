package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/findergoal/internal/api"
	"github.com/Veraticus/findergoal/internal/cli"
	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/model"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the FinderGoal API with an access token",
		Long: `Sign in to the FinderGoal API with an access token.

The token is checked against the API and stored with your profile in the
local store, so later commands use it instead of api.token.`,
		RunE: runLogin,
	}
	cmd.Flags().String("token", "", "Access token issued by FinderGoal")
	cmd.Flags().Duration("ttl", 0, "Forget the session after this long (0 keeps it until logout)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	client, err := api.NewClient(cfg.API.BaseURL, token, cfg.API.Timeout)
	if err != nil {
		return common.NewUserError("set api.base_url to reach the FinderGoal API", err)
	}

	user, err := client.Me(ctx)
	if err != nil {
		return common.NewUserError("the token was not accepted", err)
	}

	local, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer local.Close()

	session := model.Session{Token: token, User: user}
	if ttl > 0 {
		session.ExpiresAt = time.Now().Add(ttl)
	}
	local.state.Login(session)
	if err := local.save(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed in as "+user.Name))
	return err
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session and matches",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			local.state.Logout()
			if err := local.save(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed out"))
			return err
		},
	}
}
