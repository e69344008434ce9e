package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "codehunt/pkg/errors"
)

const (
	DefaultPokeAPIURL  = "https://pokeapi.co"
	DefaultGeocoderURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent   = "codehunt/1.0"

	defaultUpstreamTimeout = 10 * time.Second
	maxUpstreamBody        = 1 << 20
	lookupCacheTTL         = time.Hour
)

// UpstreamConfig points the lookup puzzles at their public APIs.
type UpstreamConfig struct {
	PokeAPIURL  string        `yaml:"pokeapiURL"`
	GeocoderURL string        `yaml:"geocoderURL"`
	UserAgent   string        `yaml:"userAgent"`
	Timeout     time.Duration `yaml:"timeout"`
}

// WithDefaults fills every unset field.
func (c UpstreamConfig) WithDefaults() UpstreamConfig {
	if c.PokeAPIURL == "" {
		c.PokeAPIURL = DefaultPokeAPIURL
	}
	if c.GeocoderURL == "" {
		c.GeocoderURL = DefaultGeocoderURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultUpstreamTimeout
	}
	return c
}

type upstream struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func newUpstream(baseURL, userAgent string, timeout time.Duration) upstream {
	return upstream{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// getJSON fetches path and decodes the body into out. It reports whether the
// upstream answered 404.
func (u upstream) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+path, nil)
	if err != nil {
		return false, pkgerrors.Wrap(fmt.Errorf("build request failed: %w", err), pkgerrors.UpstreamFailed)
	}
	req.Header.Set("Accept", "application/json")
	if u.userAgent != "" {
		req.Header.Set("User-Agent", u.userAgent)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return false, pkgerrors.Wrap(fmt.Errorf("request failed: %w", err), pkgerrors.UpstreamFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, pkgerrors.Newf(pkgerrors.UpstreamFailed, "upstream answered %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return false, pkgerrors.Wrap(fmt.Errorf("read response body failed: %w", err), pkgerrors.UpstreamFailed)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, pkgerrors.Wrap(fmt.Errorf("decode response failed: %w", err), pkgerrors.UpstreamFailed)
	}
	return false, nil
}
