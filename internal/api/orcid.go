package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// AnonymousName is displayed when an ORCID profile carries no usable name.
const AnonymousName = "anonymous"

// orcidNameLookupLimit bounds the fan-out of profile lookups during a
// patch listing.
const orcidNameLookupLimit = 4

// orcidProfile covers the personal-name path of an ORCID profile document.
type orcidProfile struct {
	Name struct {
		GivenNames struct {
			Value string `json:"value"`
		} `json:"given-names"`
		FamilyName struct {
			Value string `json:"value"`
		} `json:"family-name"`
	} `json:"name"`
}

// FetchDisplayName fetches an ORCID profile and returns a display name:
// given and family names joined by a space, or AnonymousName when both are
// empty.
func (c *Client) FetchDisplayName(ctx context.Context, profileURL string) (string, error) {
	resp, err := c.doRequest(ctx, nethttp.MethodGet, profileURL, nil, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("profile lookup failed: status %d: %s", resp.StatusCode, extractMessage(body))
	}

	var profile orcidProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("failed to decode profile: %w", err)
	}

	parts := make([]string, 0, 2)
	if given := strings.TrimSpace(profile.Name.GivenNames.Value); given != "" {
		parts = append(parts, given)
	}
	if family := strings.TrimSpace(profile.Name.FamilyName.Value); family != "" {
		parts = append(parts, family)
	}
	if len(parts) == 0 {
		return AnonymousName, nil
	}
	return strings.Join(parts, " "), nil
}

// ResolveAuthorNames looks up display names for each patch's creator with a
// bounded concurrent fan-out. A failed lookup degrades to the error text
// for that patch instead of failing the whole listing.
func (c *Client) ResolveAuthorNames(ctx context.Context, patches []Patch) []string {
	names := make([]string, len(patches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orcidNameLookupLimit)

	for i, patch := range patches {
		i, patch := i, patch
		g.Go(func() error {
			if patch.CreatedBy == "" {
				names[i] = AnonymousName
				return nil
			}
			name, err := c.FetchDisplayName(gctx, patch.CreatedBy)
			if err != nil {
				names[i] = err.Error()
				return nil
			}
			names[i] = name
			return nil
		})
	}

	// Lookups never return errors, they degrade in place.
	_ = g.Wait()
	return names
}
