// Package client is the Go client for the onboarding API: registration
// submission, provider session hand-off, and status polling until the
// verification reaches a terminal state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"veriflow/models"
)

// Client calls the onboarding API endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SaveRegistration submits the registration form data.
func (c *Client) SaveRegistration(ctx context.Context, input models.RegistrationInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/registration", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("registration request failed: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode registration response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("registration rejected: %s", out.Error)
	}
	return nil
}

// CreateAccessToken requests a provider WebSDK access token, returning the
// token and the external user ID it is bound to.
func (c *Client) CreateAccessToken(ctx context.Context, userID string) (token, boundUserID string, err error) {
	body, _ := json.Marshal(map[string]string{"userId": userID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/sumsub/token", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"accessToken"`
		UserID      string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return out.AccessToken, out.UserID, nil
}

// GetStatus fetches the current verification status for an email. found is
// false while no record exists yet, which is expected before the first
// webhook lands and is not an error.
func (c *Client) GetStatus(ctx context.Context, email string) (status models.VerificationStatus, found bool, err error) {
	u := c.BaseURL + "/api/verification/status?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", false, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			Status models.VerificationStatus `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", false, fmt.Errorf("failed to decode status response: %w", err)
		}
		return out.Status, true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("status request failed with status %d", resp.StatusCode)
	}
}
