// Package cli provides token and identity commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/periodo/periodo-cli/internal/config"
)

// newRefreshTokenCmd creates the 'refresh-token' command.
func newRefreshTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-token",
		Short: "Replace the saved authentication token",
		Long: `Delete the saved authentication token and prompt for a new one.

Use this after the server starts answering 401 to write operations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(serverFlag)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store := getTokenStore()
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			if _, err := acquireToken(cmd, cfg, store); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Token saved.")
			return nil
		},
	}
}

// newListPermissionsCmd creates the 'list-permissions' command.
func newListPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-permissions",
		Short: "Show the authenticated identity and its permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			identity, err := client.GetIdentity(GetContext())
			if err != nil {
				return reportError(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", identity.Name)
			fmt.Fprintf(out, "ID:   %s\n", identity.ID)
			if len(identity.Permissions) == 0 {
				fmt.Fprintln(out, "Permissions: none")
			} else {
				fmt.Fprintf(out, "Permissions:\n%s\n", "  "+strings.Join(identity.Permissions, "\n  "))
			}
			return nil
		},
	}
}
