package toptex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/config"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of a failed response is kept in errors
const maxErrorBody = 4096

// Client talks to the TopTex API. Authenticated calls carry the API key and
// the session token; Download fetches absolute links without credentials.
// The client never retries.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	apiKeyHeader string
	credential   Credential
	tokens       *TokenManager
	limiter      *rate.Limiter
	vendor       config.VendorConfig
	locale       language.Tag
	logger       *zap.Logger
}

// NewClient validates the vendor configuration and creates a client.
// A missing username, password, API key or base URL is reported as a
// ConfigurationError before any request is made.
func NewClient(cfg config.VendorConfig, store domainRepo.TokenStore, logger *zap.Logger) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, domainErrors.NewConfigurationError(fmt.Sprintf("invalid vendor.locale %q", cfg.Locale))
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		apiKeyHeader: cfg.APIKeyHeader,
		credential:   Credential{Username: cfg.Username, Password: cfg.Password},
		vendor:       cfg,
		locale:       locale,
		logger:       logger,
	}
	if c.apiKeyHeader == "" {
		c.apiKeyHeader = "x-api-key"
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	c.tokens = NewTokenManager(store, c, cfg.TokenTTL, logger)

	return c, nil
}

// Tokens exposes the token manager of the client
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Locale returns the preferred language for vendor texts
func (c *Client) Locale() language.Tag {
	return c.locale
}

// RequestToken authenticates a credential against the vendor
func (c *Client) RequestToken(ctx context.Context, credential Credential) (string, error) {
	endpoint := c.baseURL + c.vendor.AuthPath

	payload, err := json.Marshal(dto.AuthenticateRequest{
		Username: credential.Username,
		Password: credential.Password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode authentication request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(c.apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, _, err := c.execute(req)
	if err != nil {
		return "", err
	}

	if status < 200 || status >= 300 {
		c.logger.Error("TopTexClient: Authentication rejected",
			zap.String("username", credential.Username),
			zap.Int("status_code", status),
			zap.ByteString("response_body", body))
		return "", domainErrors.NewAuthenticationError("vendor authentication failed", status, truncate(body), nil)
	}

	var resp dto.AuthenticateResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		return "", domainErrors.NewAuthenticationError("vendor authentication returned no token", status, truncate(body), err)
	}

	return resp.Token, nil
}

// EnsureSession makes sure a valid token is available
func (c *Client) EnsureSession(ctx context.Context) error {
	_, err := c.tokens.GetValidToken(ctx, c.credential)
	return err
}

// Get performs an authenticated GET and decodes the JSON reply into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doAuthenticated(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs an authenticated POST with a JSON body and decodes the reply into out
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.doAuthenticated(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) doAuthenticated(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	token, err := c.tokens.GetValidToken(ctx, c.credential)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(c.apiKeyHeader, c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	status, respBody, _, err := c.execute(req)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		c.tokens.Invalidate(ctx, c.credential)
		return domainErrors.NewAuthenticationError("vendor rejected the session token", status, truncate(respBody), nil)
	}
	if status < 200 || status >= 300 {
		return domainErrors.NewRemoteServiceError(method, endpoint, status, truncate(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return domainErrors.NewInvalidResponseError(method, endpoint, err)
	}
	return nil
}

// Download fetches an absolute link without vendor credentials and returns
// the body with its Content-Type.
func (c *Client) Download(ctx context.Context, link string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	status, body, header, err := c.execute(req)
	if err != nil {
		return nil, "", err
	}
	if status < 200 || status >= 300 {
		return nil, "", domainErrors.NewRemoteServiceError(http.MethodGet, link, status, truncate(body))
	}

	return body, header.Get("Content-Type"), nil
}

// execute sends the request and reads the whole body
func (c *Client) execute(req *http.Request) (int, []byte, http.Header, error) {
	method, target := req.Method, req.URL.Redacted()

	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return 0, nil, nil, domainErrors.NewTransportError(method, target, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("TopTexClient: HTTP request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return 0, nil, nil, domainErrors.NewTransportError(method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, domainErrors.NewTransportError(method, target, fmt.Errorf("failed to read body: %w", err))
	}

	c.logger.Debug("TopTexClient: HTTP request completed",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("body_size", len(body)),
		zap.Duration("duration", time.Since(start)))

	return resp.StatusCode, body, resp.Header, nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
