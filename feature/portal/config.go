package portal

import "time"

// Config holds the settings of the simulated provider portal.
type Config struct {
	// ClientID is the accepted client-credentials identifier.
	ClientID string `mapstructure:"client_id" default:"Fun"`
	// ClientSecret is the accepted client-credentials secret.
	ClientSecret string `mapstructure:"client_secret" default:"=work@red"`
	// TokenTTLSeconds is the lifetime of issued tokens.
	TokenTTLSeconds int `mapstructure:"token_ttl_seconds" default:"3600"`
}

// TokenTTL returns the token lifetime as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}
