package validator

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const (
	defaultConnectTimeout = 3 * time.Second
	defaultRequestTimeout = 60 * time.Second
	defaultMaxRedirects   = 3
)

// ClientConfig holds HTTP client settings shared by every challenge.
type ClientConfig struct {
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MaxRedirects   int           `yaml:"maxRedirects"`
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	return c
}

// newTransport builds an HTTP/1.1-only transport.
func newTransport(cfg ClientConfig) *http.Transport {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   false,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 64,
		IdleConnTimeout:     30 * time.Second,
	}
}

func limitedRedirects(max int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		req.Header.Del("Referer")
		return nil
	}
}

func noRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// NewClient returns the default challenge client: it follows a few redirects
// and never sends a Referer.
func NewClient(cfg ClientConfig) *http.Client {
	cfg = cfg.withDefaults()
	return &http.Client{
		Transport:     newTransport(cfg),
		CheckRedirect: limitedRedirects(cfg.MaxRedirects),
		Timeout:       cfg.RequestTimeout,
	}
}

// NewNoRedirectClient returns a client that hands back redirect responses as-is.
func NewNoRedirectClient(cfg ClientConfig) *http.Client {
	c := NewClient(cfg)
	c.CheckRedirect = noRedirects
	return c
}

// NewCookieClient returns a client with its own cookie store.
func NewCookieClient(cfg ClientConfig) *http.Client {
	c := NewClient(cfg)
	jar, _ := cookiejar.New(nil) // never fails without options
	c.Jar = jar
	return c
}
