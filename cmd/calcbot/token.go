package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelaire/calcbot/internal/keychain"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the Telegram bot token stored in the system keychain",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the bot token in the system keychain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(args[0])
			if token == "" {
				return errors.New("token must not be empty")
			}
			if err := keychain.Set(keychain.TokenAccount, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Token stored in system keychain.")
			return err
		},
	})
	return cmd
}
