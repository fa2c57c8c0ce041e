// Package gateway is the cookie-authenticated HTTP client for the
// OpenAI-compatible completion gateway. Every call runs the same protocol:
// ensure the credential is fresh, perform the request with ambient cookies,
// and on a first-attempt 401 reissue the credential and retry exactly once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/credential"
)

const (
	endpointModels      = "/v1/models"
	endpointCompletions = "/v1/chat/completions"
)

// Interface compliance check.
var _ studiochat.Gateway = (*Client)(nil)

// Client implements studiochat.Gateway. The http.Client must carry the
// cookie jar shared with the bff.Client: the credential cookie set during
// issuance is the only authenticator the gateway trusts, so any
// Authorization header is stripped before a request leaves.
type Client struct {
	base  string
	http  *http.Client
	creds *credential.Manager
}

// NewClient creates a gateway client for the given base URL.
func NewClient(base string, httpClient *http.Client, creds *credential.Manager) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient, creds: creds}
}

// ListModels fetches the model catalog.
func (c *Client) ListModels(ctx context.Context) ([]studiochat.Model, error) {
	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.base+endpointModels, nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models: status %d", resp.StatusCode)
	}

	var body struct {
		Data []studiochat.Model `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}
	return body.Data, nil
}

// completionRequest is the OpenAI-compatible chat-completions payload.
type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamCompletion opens a token stream for the given conversation. The
// retry decision is made on the initial response status, before any stream
// bytes are consumed, so a retried turn can never follow a partially-applied
// stream.
func (c *Client) StreamCompletion(ctx context.Context, model string, messages []studiochat.ChatMessage) (studiochat.DeltaStream, error) {
	payload := completionRequest{Model: model, Stream: true}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, completionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpointCompletions, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("chat completion: status %d", resp.StatusCode)
	}
	return newStream(resp.Body), nil
}

// do runs the shared request protocol. newReq must build a fresh request on
// each call so the retried attempt replays an identical body.
func (c *Client) do(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	if err := c.creds.Ensure(ctx); err != nil {
		return nil, err
	}

	state := firstAttempt
	for {
		resp, err := c.attempt(newReq)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}
		resp.Body.Close()

		next, err := state.onUnauthorized()
		if err != nil {
			return nil, err
		}
		state = next

		// The credential was rejected despite a fresh-looking expiry:
		// discard it and mint a new one before the single retry.
		if err := c.creds.ForceReissue(ctx); err != nil {
			return nil, err
		}
	}
}

// attempt performs one HTTP exchange. The gateway trusts only the credential
// cookie, so a stray bearer header must never leave the client.
func (c *Client) attempt(newReq func() (*http.Request, error)) (*http.Response, error) {
	req, err := newReq()
	if err != nil {
		return nil, err
	}
	req.Header.Del("Authorization")
	return c.http.Do(req)
}
