package provider

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the connection settings for the order provider.
type Config struct {
	// Enabled selects the network client. When false the in-memory simulation is used.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URL is the provider base URL.
	URL string `mapstructure:"url" default:"http://localhost:3000"`
	// ClientID is the client-credentials identifier.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the client-credentials secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// CertPath points to a PEM bundle trusted for the provider's TLS certificate.
	CertPath string `mapstructure:"cert_path" default:""`
	// InsecureSkipVerify disables TLS verification. Development only.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// TimeoutSeconds bounds every provider request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// TokenBufferSeconds is subtracted from the token ttl so tokens are renewed before they lapse.
	TokenBufferSeconds int `mapstructure:"token_buffer_seconds" default:"30"`
	// TokenPath is the credential exchange endpoint.
	TokenPath string `mapstructure:"token_path" default:"/api/v1/token"`
	// OrdersPath is the collection endpoint used to create and list orders.
	OrdersPath string `mapstructure:"orders_path" default:"/api/v1/orders"`
	// OrderPath is the single order endpoint. {id} is replaced by the external id.
	OrderPath string `mapstructure:"order_path" default:"/api/v1/order/{id}"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenBuffer returns the token renewal margin as a duration.
func (c Config) TokenBuffer() time.Duration {
	return time.Duration(c.TokenBufferSeconds) * time.Second
}

// Validate checks the settings required by the network client.
// A disabled provider needs no settings.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("provider.url must be an absolute http(s) URL, got %q", c.URL)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("provider.client_id and provider.client_secret are required when the provider is enabled")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider.timeout_seconds must be positive")
	}
	if c.TokenBufferSeconds < 0 {
		return fmt.Errorf("provider.token_buffer_seconds must not be negative")
	}
	if !strings.Contains(c.OrderPath, "{id}") {
		return fmt.Errorf("provider.order_path must contain {id}")
	}
	return nil
}
