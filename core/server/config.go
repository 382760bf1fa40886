package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ReadTimeoutSeconds bounds reading a full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"10"`
	// WriteTimeoutSeconds bounds writing a response.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
	// BodyLimitBytes caps request bodies.
	BodyLimitBytes int `mapstructure:"body_limit_bytes" default:"1048576"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// FiberConfig builds the Fiber settings for an application named appName.
// Zero values fall back to Fiber's own defaults.
func (c Config) FiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(c.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:          time.Duration(c.WriteTimeoutSeconds) * time.Second,
		BodyLimit:             c.BodyLimitBytes,
	}
}
