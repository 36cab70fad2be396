package util

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/proxy"
)

// UserAgent identifies the proxy to upstream instances.
const UserAgent = "Golligog-Flutter-Backend/1.0"

// NewTransport builds the shared outbound transport. proxyURL may be empty, an
// http(s) proxy or a socks5 proxy.
func NewTransport(proxyURL string, maxConnsPerHost int) (*http.Transport, error) {
	if maxConnsPerHost <= 0 {
		maxConnsPerHost = 20
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		ForceAttemptHTTP2: true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   maxConnsPerHost,
		MaxConnsPerHost:       maxConnsPerHost * 5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialContext:           dialer.DialContext,
	}

	if proxyURL == "" {
		return transport, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		socks, err := proxy.FromURL(parsed, dialer)
		if err != nil {
			return nil, fmt.Errorf("create socks5 dialer: %w", err)
		}
		if ctxDialer, ok := socks.(proxy.ContextDialer); ok {
			transport.DialContext = ctxDialer.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return socks.Dial(network, addr)
			}
		}
	case "http", "https":
		transport.Proxy = http.ProxyURL(parsed)
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}

	return transport, nil
}

// UpstreamResponse is a fully read upstream reply.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// UpstreamClient performs bounded GET requests against SearXNG instances.
type UpstreamClient struct {
	client *resty.Client
}

// NewUpstreamClient wraps a resty client around transport. A nil transport uses
// resty's default.
func NewUpstreamClient(transport http.RoundTripper) *UpstreamClient {
	client := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{})
	if transport != nil {
		client.SetTransport(transport)
	}
	return &UpstreamClient{client: client}
}

// Get issues GET rawURL?params and reads the whole body. Any transport fault,
// including the timeout, is returned as an error.
func (c *UpstreamClient) Get(ctx context.Context, rawURL string, params map[string]string, timeout time.Duration) (*UpstreamResponse, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		return nil, err
	}
	return &UpstreamResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Error().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
