package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	obport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/onboarding"
)

// DefaultTimeout bounds a reputation call end to end
const DefaultTimeout = 5 * time.Second

// Config holds reputation service settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// checkRequest is the wire format sent to the reputation endpoint
type checkRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// checkResponse is the wire format returned by the reputation endpoint
type checkResponse struct {
	Status string `json:"status"`
	Data   struct {
		Blacklisted bool   `json:"blacklisted"`
		Reason      string `json:"reason"`
	} `json:"data"`
}

// HTTPClient implements the ReputationClient port against the external
// reputation HTTP API. Every failure mode surfaces as an error so the
// onboarding guard can apply its fail-closed policy; this client never
// guesses a verdict.
type HTTPClient struct {
	config       Config
	httpClient   *http.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewHTTPClient creates a reputation client with a bounded timeout
func NewHTTPClient(config Config, timeProvider coreport.TimeProvider, logger coreport.Logger) obport.ReputationClient {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Check posts the prospective user's identifiers to the reputation
// endpoint and decodes the verdict. The context carries the hard
// timeout, so a hung upstream cancels the connection instead of leaking it.
func (c *HTTPClient) Check(ctx context.Context, email, phoneNumber string) (*obport.Report, error) {
	ctx, cancel := c.timeProvider.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(checkRequest{Email: email, PhoneNumber: phoneNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reputation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build reputation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := c.timeProvider.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Reputation request failed", map[string]any{
			"error":      err.Error(),
			"elapsed_ms": c.timeProvider.Since(start).Milliseconds(),
		})
		return nil, fmt.Errorf("reputation request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("reputation service returned status %d", resp.StatusCode)
	}

	var decoded checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode reputation response: %w", err)
	}

	if decoded.Status != "success" {
		return nil, fmt.Errorf("reputation service reported status %q", decoded.Status)
	}

	return &obport.Report{
		Blacklisted: decoded.Data.Blacklisted,
		Reason:      decoded.Data.Reason,
	}, nil
}
