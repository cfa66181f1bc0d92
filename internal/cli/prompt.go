package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/periodo/periodo-cli/internal/config"
)

// getToken returns the saved bearer token, running the interactive
// acquisition flow when none exists. The token is never validated locally;
// the server's 401 is the only validity signal.
func getToken(cmd *cobra.Command, cfg *config.Config, store config.TokenStore) (string, error) {
	token, err := store.Load()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, config.ErrNoToken) {
		return "", err
	}

	return acquireToken(cmd, cfg, store)
}

// acquireToken explains where to get a token, prompts for one, and
// persists it for later invocations.
func acquireToken(cmd *cobra.Command, cfg *config.Config, store config.TokenStore) (string, error) {
	errOut := cmd.ErrOrStderr()

	fmt.Fprintln(errOut, "No authentication token found.")
	fmt.Fprintf(errOut, "Register at %sregister to obtain one, then paste it here.\n", cfg.ServerURL)
	fmt.Fprint(errOut, "Token: ")

	token, err := readSecret(cmd)
	if err != nil {
		return "", err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("empty token")
	}

	if err := store.Save(token); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}

	return token, nil
}

// readSecret reads a pasted token. When stdin is a terminal, echo is
// suppressed; otherwise (pipes, tests) a plain line read is used.
func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
