// Package cli provides bag commands.
package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newCreateBagCmd creates the 'create-bag' command.
func newCreateBagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-bag <file> [<uuid>]",
		Short: "Create a bag of item references",
		Long: `Create a bag from the named JSON file (or standard input when the
file is '-'). A fresh UUID is generated when none is supplied.

Examples:
  periodo create-bag items.json
  periodo create-bag items.json 71809141-7830-4f41-9754-91e1d49808a1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 2 {
				parsed, err := uuid.Parse(args[1])
				if err != nil {
					return fmt.Errorf("invalid bag uuid %q: %w", args[1], err)
				}
				id = parsed.String()
			} else {
				id = uuid.New().String()
			}

			body, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			bagURL, err := client.CreateBag(GetContext(), id, body)
			if err != nil {
				return reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Bag created: %s\n", bagURL)
			return nil
		},
	}
}
