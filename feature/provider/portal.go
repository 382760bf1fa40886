package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-reconciler/core/clock"
	"order-reconciler/feature/orders/models"

	"go.uber.org/zap"
)

// PortalClient talks to the provider over HTTPS with JSON payloads.
type PortalClient struct {
	cfg     Config
	baseURL string
	client  *http.Client
	tokens  *TokenCache
	logger  *zap.Logger
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TTL         int64  `json:"ttl"`
}

type createOrderRequest struct {
	Type models.Type `json:"type"`
}

// NewPortalClient creates a network client. The token cache it owns
// authenticates against cfg.TokenPath.
func NewPortalClient(cfg Config, client *http.Client, clk clock.Clock, logger *zap.Logger) *PortalClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PortalClient{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client:  client,
		logger:  logger,
	}
	p.tokens = NewTokenCache(AuthenticatorFunc(p.authenticate), clk, cfg.TokenBuffer())
	return p
}

// Tokens exposes the client's token cache.
func (p *PortalClient) Tokens() *TokenCache {
	return p.tokens
}

// CreateOrder submits {type} and returns the id assigned by the provider.
func (p *PortalClient) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	var remote RemoteOrder
	if err := p.do(ctx, http.MethodPost, p.cfg.OrdersPath, createOrderRequest{Type: order.Type}, &remote); err != nil {
		return "", err
	}
	if remote.ID == "" {
		return "", p.malformed(http.MethodPost, p.cfg.OrdersPath, "missing id")
	}
	return remote.ID, nil
}

// FetchOrder returns the remote order, or nil when the provider answers 404.
func (p *PortalClient) FetchOrder(ctx context.Context, externalID string) (*RemoteOrder, error) {
	path := p.orderPath(externalID)

	var remote RemoteOrder
	if err := p.do(ctx, http.MethodGet, path, nil, &remote); err != nil {
		if isOrderNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if remote.ID == "" {
		return nil, p.malformed(http.MethodGet, path, "missing id")
	}
	if !remote.Status.IsValid() {
		return nil, p.malformed(http.MethodGet, path, fmt.Sprintf("unknown status %q", remote.Status))
	}
	return &remote, nil
}

// DeleteOrder removes the order remotely. A 404 yields false without error.
func (p *PortalClient) DeleteOrder(ctx context.Context, externalID string) (bool, error) {
	if err := p.do(ctx, http.MethodDelete, p.orderPath(externalID), nil, nil); err != nil {
		if isOrderNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListOrders returns every order the provider currently holds.
func (p *PortalClient) ListOrders(ctx context.Context) ([]RemoteOrder, error) {
	var remote []RemoteOrder
	if err := p.do(ctx, http.MethodGet, p.cfg.OrdersPath, nil, &remote); err != nil {
		return nil, err
	}
	if remote == nil {
		remote = []RemoteOrder{}
	}
	return remote, nil
}

// isOrderNotFound reports a 404 from the order endpoint. A 404 from the
// token endpoint is an auth failure and never means the order is missing.
func isOrderNotFound(err error) bool {
	return !errors.Is(err, ErrAuth) && IsNotFound(err)
}

func (p *PortalClient) orderPath(externalID string) string {
	return strings.ReplaceAll(p.cfg.OrderPath, "{id}", url.PathEscape(externalID))
}

func (p *PortalClient) malformed(method, path, reason string) error {
	return fmt.Errorf("%w: malformed response from %s %s: %s", ErrProvider, method, path, reason)
}

// do performs an authenticated request. Non-2xx answers become *StatusError.
// A 401 does not invalidate the cached token.
func (p *PortalClient) do(ctx context.Context, method, path string, body, out any) error {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := p.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return p.send(req, out)
}

func (p *PortalClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrProvider, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (p *PortalClient) send(req *http.Request, out any) error {
	method, path := req.Method, req.URL.Path

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrProvider, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return p.malformed(method, path, err.Error())
	}
	return nil
}

// authenticate exchanges the client credentials for a token.
func (p *PortalClient) authenticate(ctx context.Context) (string, time.Duration, error) {
	req, err := p.newRequest(ctx, http.MethodPost, p.cfg.TokenPath, tokenRequest{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
	})
	if err != nil {
		return "", 0, err
	}

	var tr tokenResponse
	if err := p.send(req, &tr); err != nil {
		return "", 0, err
	}

	p.logger.Debug("Provider token acquired", zap.Int64("ttl_seconds", tr.TTL))
	return tr.AccessToken, time.Duration(tr.TTL) * time.Second, nil
}
