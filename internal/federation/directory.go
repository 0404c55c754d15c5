package federation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// Directory looks up user profiles in the external identity directory.
// Lookups are best-effort: callers must tolerate failure and proceed
// without a profile.
type Directory interface {
	Lookup(ctx context.Context, userID string) (*domain.Profile, error)
}

const defaultLookupTimeout = 2 * time.Second

// HTTPDirectory queries the identity provider's user API.
type HTTPDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPDirectory builds a directory client with a short per-lookup
// timeout so enrichment can never stall a primary write.
func NewHTTPDirectory(baseURL, apiKey string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultLookupTimeout},
	}
}

type directoryUser struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Username       string `json:"username"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

func (u *directoryUser) displayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	if u.Username != "" {
		return u.Username
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

// Lookup implements Directory.
func (d *HTTPDirectory) Lookup(ctx context.Context, userID string) (*domain.Profile, error) {
	if d.baseURL == "" {
		return nil, errors.New("federation: directory base URL is not configured")
	}

	endpoint := d.baseURL + "/v1/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("federation: directory lookup returned %d", resp.StatusCode)
	}

	var user directoryUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &domain.Profile{
		DisplayName: user.displayName(),
		ImageURL:    user.ImageURL,
	}, nil
}
