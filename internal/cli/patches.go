// Package cli provides patch lifecycle commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wI2L/jsondiff"

	"github.com/periodo/periodo-cli/internal/api"
)

// newListPatchesCmd creates the 'list-patches' command.
func newListPatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-patches",
		Short: "List open, unmerged patches",
		Long: `List open, unmerged patches on the server, oldest first.

Each patch is shown with its URL, the submitter's name (resolved from
their ORCID profile), and the submission time. This is an
unauthenticated read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd, false)
			if err != nil {
				return err
			}

			ctx := GetContext()
			patches, err := client.ListOpenPatches(ctx)
			if err != nil {
				return reportError(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(patches) == 0 {
				fmt.Fprintln(out, "No open and unmerged patches.")
				return nil
			}

			names := client.ResolveAuthorNames(ctx, patches)
			for i, patch := range patches {
				fmt.Fprintln(out, patch.URL)
				fmt.Fprintf(out, "    submitted %s by %s\n", patch.CreatedAt, names[i])
			}
			return nil
		},
	}
}

// newSubmitPatchCmd creates the 'submit-patch' command.
func newSubmitPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit-patch <file>",
		Short: "Submit a patch for review",
		Long: `Submit a patch document to the server for review.

The patch is read from the named file, or from standard input when the
file is '-'. On success the server-assigned patch URL is printed, along
with the review page URL when one can be derived.

Examples:
  periodo submit-patch changes.json
  periodo create-patch old.json new.json | periodo submit-patch -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			patchURL, err := client.SubmitPatch(GetContext(), body)
			if err != nil {
				return reportError(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Patch submitted: %s\n", patchURL)
			if review := api.PatchReviewURL(client.ServerURL(), patchURL); review != "" {
				fmt.Fprintf(out, "  Review it at %s\n", review)
			}
			return nil
		},
	}
}

// newMergePatchCmd creates the 'merge-patch' command.
func newMergePatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-patch <url>",
		Short: "Merge a submitted patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			if err := client.MergePatch(GetContext(), args[0]); err != nil {
				return reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Patch merged: %s\n", args[0])
			return nil
		},
	}
}

// newRejectPatchCmd creates the 'reject-patch' command.
func newRejectPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject-patch <url>",
		Short: "Reject a submitted patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(cmd, true)
			if err != nil {
				return err
			}

			if err := client.RejectPatch(GetContext(), args[0]); err != nil {
				return reportError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Patch rejected: %s\n", args[0])
			return nil
		},
	}
}

// newCreatePatchCmd creates the 'create-patch' command.
func newCreatePatchCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "create-patch <from.json> <to.json>",
		Short: "Generate a patch between two dataset files",
		Long: `Generate a JSON Patch document describing the changes from one local
dataset file to another. The result is printed to stdout (or written
with -o) and can be piped straight into submit-patch. No network access
is involved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			toData, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			patch, err := jsondiff.CompareJSON(fromData, toData)
			if err != nil {
				return fmt.Errorf("failed to diff documents: %w", err)
			}

			encoded, err := json.MarshalIndent(patch, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode patch: %w", err)
			}
			encoded = append(encoded, '\n')

			if outputFile != "" {
				return os.WriteFile(outputFile, encoded, 0644)
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the patch to a file instead of stdout")

	return cmd
}
