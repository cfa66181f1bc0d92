// Package cli provides graph commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newUpdateGraphCmd creates the 'update-graph' command.
func newUpdateGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-graph <file> <id>",
		Short: "Create or replace a named graph",
		Long: `Create or replace the named graph with the contents of the given JSON
file (or standard input when the file is '-').

Examples:
  periodo update-graph places.json places
  cat notes.json | periodo update-graph - notes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			graphURL, err := client.UpdateGraph(GetContext(), args[1], body)
			if err != nil {
				return reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Graph updated: %s\n", graphURL)
			return nil
		},
	}
}

// newDeleteGraphCmd creates the 'delete-graph' command.
func newDeleteGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-graph <id>",
		Short: "Delete a named graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			if err := client.DeleteGraph(GetContext(), args[0]); err != nil {
				return reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Graph deleted: %s\n", args[0])
			return nil
		},
	}
}
