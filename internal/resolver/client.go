// Package resolver calls the external resolver API that translates a
// shared-storage link into a direct, time-limited media URL.
package resolver

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
)

const defaultTimeout = 600 * time.Second

// Client issues resolve requests against a per-user base URL.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a resolver client. TLS verification is disabled:
// the upstream resolver/CDN presents non-standard certificates.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		logger: logger,
	}
}

// envelope is the resolver API's response shape.
type envelope struct {
	Success bool `json:"success"`
	DLink   struct {
		DLink string `json:"dlink"`
		Name  string `json:"name"`
		Size  string `json:"size"`
	} `json:"dlink"`
}

// Resolve asks the resolver at baseURL for the direct media URL behind
// link. The link is percent-encoded before being placed in the query.
func (c *Client) Resolve(ctx context.Context, baseURL, link string) (*domain.ResolvedMedia, error) {
	reqURL := fmt.Sprintf("%s/api?link=%s", baseURL, url.QueryEscape(link))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.ResolveError{Err: err}
	}

	c.logger.Debug("Calling resolver API", zap.String("base_url", baseURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.ResolveError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ResolveError{Err: fmt.Errorf("resolver returned status %d", resp.StatusCode)}
	}

	// Parse loosely: the content type is not checked, only the body.
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &domain.ResolveError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	if !env.Success || env.DLink.DLink == "" {
		return nil, &domain.ResolveError{Err: fmt.Errorf("malformed response")}
	}

	return &domain.ResolvedMedia{
		DirectURL:   env.DLink.DLink,
		DisplayName: env.DLink.Name,
		SizeLabel:   env.DLink.Size,
	}, nil
}
