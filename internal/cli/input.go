package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// StdinSentinel names standard input as a document source.
const StdinSentinel = "-"

// readDocument reads a request body from a named file, or from standard
// input when the name is "-". The whole document is buffered so idempotent
// requests can be retried.
func readDocument(cmd *cobra.Command, name string) ([]byte, error) {
	if name == StdinSentinel {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
