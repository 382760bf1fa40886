// Package httpclient builds the outbound HTTP clients used to talk to the
// order provider.
package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs method, URL, status and duration of every request.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Logger receives one debug entry per completed request and one error
	// entry per transport failure.
	Logger *zap.Logger
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		lrt.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	lrt.Logger.Debug("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// Options configures NewClient.
type Options struct {
	// Timeout bounds the whole exchange, including reading the body.
	Timeout time.Duration
	// TLS overrides the transport's TLS settings when set.
	TLS *tls.Config
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// NewClient returns an http.Client with logging middleware and a hard timeout.
func NewClient(opts Options) *http.Client {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.TLS != nil {
		transport.TLSClientConfig = opts.TLS
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
			Logger:  l,
		},
		Timeout: opts.Timeout,
	}
}

// NewTLSConfig builds the TLS settings for the provider connection.
// caPath, when non-empty, must point to a PEM bundle that replaces the system
// roots. insecure disables certificate verification entirely.
func NewTLSConfig(caPath string, insecure bool) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecure, //nolint:gosec // opt-in for development providers
	}

	if caPath == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle %s: %w", caPath, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caPath)
	}
	cfg.RootCAs = pool

	return cfg, nil
}
