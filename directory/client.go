// Package directory is the client for the external user-directory service.
// The messaging core only reads from it: profile data for enrichment and
// active-status for validating participant references.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"community-messaging/contract"
	"community-messaging/domain/messaging"

	"github.com/google/uuid"
)

type HTTPDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *slog.Logger
}

func NewHTTPDirectory(baseURL, apiKey string, log *slog.Logger) contract.IUserDirectory {
	return &HTTPDirectory{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

type profilePayload struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Active      bool      `json:"active"`
}

func (d *HTTPDirectory) Profile(ctx context.Context, id uuid.UUID) (messaging.UserProfile, error) {
	profiles, err := d.Profiles(ctx, []uuid.UUID{id})
	if err != nil {
		return messaging.UserProfile{}, err
	}
	profile, ok := profiles[id]
	if !ok {
		return messaging.UserProfile{}, fmt.Errorf("directory has no user %s", id)
	}
	return profile, nil
}

// Profiles resolves a batch in one round trip. Unknown IDs are simply
// absent from the result; callers decide whether that is an error.
func (d *HTTPDirectory) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]messaging.UserProfile, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("id", id.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/users?%s", d.baseURL, query.Encode()), nil)
	if err != nil {
		return nil, err
	}
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user directory unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user directory answered %d", resp.StatusCode)
	}

	var payload []profilePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	profiles := make(map[uuid.UUID]messaging.UserProfile, len(payload))
	for _, p := range payload {
		profiles[p.ID] = messaging.UserProfile{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			AvatarURL:   p.AvatarURL,
			Active:      p.Active,
		}
	}
	return profiles, nil
}
