package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/comptoir/internal/auth"
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringP("subject", "s", "", "Actor ID to embed (random when empty)")
}

var tokenCmd = &cobra.Command{
	Use:   "token ROLE",
	Short: "Issue a bearer token for one of admin, boutique_manager, seller, salon_manager",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.Auth.Secret == "" {
		return errors.New("AUTH_SECRET must be set")
	}

	actor := auth.Actor{ID: uuid.New(), Role: auth.Role(args[0])}

	if s, _ := cmd.Flags().GetString("subject"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("parsing subject: %w", err)
		}

		actor.ID = id
	}

	token, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL).Issue(actor)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)

	return nil
}
