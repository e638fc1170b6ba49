package sumsub

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"veriflow/config"
	"veriflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const accessTokenTTL = 600 * time.Second

// Client is a minimal Sumsub REST client covering the endpoints the
// onboarding flow needs: WebSDK access tokens, applicant status, and
// applicant info. Every request is signed with HMAC-SHA256 over
// timestamp + METHOD + path.
type Client struct {
	BaseURL   string
	AppToken  string
	SecretKey string
	HTTP      *http.Client
	Cache     *redis.Client
}

// NewClient builds a client from the loaded configuration. The Redis cache
// holds issued access tokens for their TTL so repeated widget launches do not
// burn new tokens; pass nil to disable caching.
func NewClient(cache *redis.Client) (*Client, error) {
	cfg := config.AppConfig
	if cfg.SumsubAppToken == "" || cfg.SumsubSecretKey == "" {
		return nil, fmt.Errorf("sumsub credentials are not configured")
	}
	return &Client{
		BaseURL:   cfg.SumsubBaseURL,
		AppToken:  cfg.SumsubAppToken,
		SecretKey: cfg.SumsubSecretKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		Cache:     cache,
	}, nil
}

// sign computes the request signature over ts + METHOD + path (path includes
// the query string; no request body is part of the signature for these
// endpoints).
func (c *Client) sign(ts int64, method, path string) string {
	mac := hmac.New(sha256.New, []byte(c.SecretKey))
	mac.Write([]byte(strconv.FormatInt(ts, 10) + method + path))
	return hex.EncodeToString(mac.Sum(nil))
}

// do issues a signed request and returns the response body, rejecting
// non-2xx responses.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("sumsub: failed to build request: %w", err)
	}

	ts := time.Now().Unix()
	sig := c.sign(ts, method, path)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-App-Token", c.AppToken)
	req.Header.Set("X-App-Access-Sig", sig)
	req.Header.Set("X-App-Access-Ts", strconv.FormatInt(ts, 10))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sumsub: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sumsub: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		utils.GetLogger().Warn("Sumsub API error",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("sumsub: API request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

// CreateAccessToken issues a WebSDK access token for the configured
// verification level, bound to the given external user ID.
func (c *Client) CreateAccessToken(ctx context.Context, externalUserID string) (string, error) {
	cacheKey := "sumsub:token:" + externalUserID
	if c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	path := fmt.Sprintf("/resources/accessTokens?userId=%s&ttlInSecs=%d&levelName=%s",
		url.QueryEscape(externalUserID),
		int(accessTokenTTL.Seconds()),
		url.QueryEscape(config.AppConfig.SumsubLevelName))

	body, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("sumsub: failed to decode access token response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("sumsub: empty access token in response")
	}

	if c.Cache != nil {
		// Expire slightly early so a cached token is never handed out stale.
		c.Cache.Set(ctx, cacheKey, out.Token, accessTokenTTL-30*time.Second)
	}
	return out.Token, nil
}

// GetApplicantStatus fetches the review status document for an applicant.
func (c *Client) GetApplicantStatus(ctx context.Context, applicantID string) (json.RawMessage, error) {
	path := "/resources/applicants/" + url.PathEscape(applicantID) + "/status"
	body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// FindApplicantID resolves the Sumsub applicant ID for an external user ID.
func (c *Client) FindApplicantID(ctx context.Context, externalUserID string) (string, error) {
	path := "/resources/applicants?externalUserId=" + url.QueryEscape(externalUserID)
	body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return "", err
	}

	var out struct {
		TotalItems int `json:"totalItems"`
		Items      []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("sumsub: failed to decode applicant list: %w", err)
	}
	if out.TotalItems == 0 || len(out.Items) == 0 {
		return "", fmt.Errorf("sumsub: applicant not found for %s", externalUserID)
	}
	return out.Items[0].ID, nil
}

// GetApplicantInfo fetches the extracted ID document data for an applicant.
func (c *Client) GetApplicantInfo(ctx context.Context, applicantID string) (json.RawMessage, error) {
	path := "/resources/applicants/" + url.PathEscape(applicantID) + "/info"
	body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
