// Package cli provides API client helper functions.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/periodo/periodo-cli/internal/api"
	"github.com/periodo/periodo-cli/internal/config"
)

// newAPIClient loads configuration and creates an API client. When authed
// is true, a bearer token is resolved first, prompting the user if no
// token has been saved yet.
func newAPIClient(cmd *cobra.Command, authed bool) (*api.Client, error) {
	cfg, err := config.Load(serverFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	token := ""
	if authed {
		token, err = getToken(cmd, cfg, getTokenStore())
		if err != nil {
			return nil, fmt.Errorf("failed to obtain token: %w", err)
		}
	}

	client, err := api.NewClient(cfg, token, GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, nil
}
