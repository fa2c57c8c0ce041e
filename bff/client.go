// Package bff is the HTTP client for the backend-for-frontend: current-user
// lookup, logout, and gateway-credential issuance. Authentication with the
// BFF itself rides on a first-party session cookie held by the shared cookie
// jar; this package never reads cookie values.
package bff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/credential"
)

const (
	endpointMe     = "/api/me"
	endpointLogout = "/api/logout"
	endpointToken  = "/api/llm/token"
)

// Interface compliance check.
var _ credential.Issuer = (*Client)(nil)

// Client talks to the BFF. The http.Client must carry a cookie jar shared
// with the gateway client: credential issuance sets an HttpOnly cookie
// scoped to the gateway origin as a response side effect, and that cookie is
// the only authenticator the gateway accepts.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a BFF client for the given base URL.
func NewClient(base string, httpClient *http.Client) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient}
}

// Me fetches the current-user snapshot. A 401 means there is no valid login
// session and the caller should re-authenticate.
func (c *Client) Me(ctx context.Context) (studiochat.Me, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+endpointMe, nil)
	if err != nil {
		return studiochat.Me{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return studiochat.Me{}, fmt.Errorf("fetch current user: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return studiochat.Me{}, studiochat.ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return studiochat.Me{}, fmt.Errorf("fetch current user: status %d", resp.StatusCode)
	}

	var me studiochat.Me
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return studiochat.Me{}, fmt.Errorf("decode current user: %w", err)
	}
	return me, nil
}

// Logout ends the BFF session.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpointLogout, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: status %d", resp.StatusCode)
	}
	return nil
}

// tokenResponse is the issuance response body. The credential itself is
// delivered via Set-Cookie and never appears here.
type tokenResponse struct {
	ExpiresAtUnix int64 `json:"expires_at_unix"`
}

// Issue mints a gateway credential. On success the server has set the
// credential cookie on the jar; only the expiry is returned. A 401 means the
// BFF session itself is gone and is reported as ErrUnauthenticated, which is
// never retried internally.
func (c *Client) Issue(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpointToken, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("issue credential: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return time.Time{}, studiochat.ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return time.Time{}, &studiochat.IssuanceError{Status: resp.StatusCode}
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("decode issuance response: %w", err)
	}
	return time.Unix(body.ExpiresAtUnix, 0), nil
}
