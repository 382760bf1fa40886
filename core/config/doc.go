// Package config loads the order reconciler settings.
//
// Values come from a .env file when present and from environment variables,
// which win. Keys are nested by section and the environment form replaces
// dots with underscores, so provider.client_id is read from
// PROVIDER_CLIENT_ID.
//
// # Configuration Structure
//
//   - Log: level and format
//   - Database: MySQL or SQLite connection
//   - Provider: endpoint, client credentials, TLS trust, token buffer
//   - Scheduler: worker count, watch interval, lease ttl, forward-only mode
//   - Cache: optional Redis URL for leases
//   - Storage: MinIO bucket for run reports
//   - Server, Portal: the simulated provider portal
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
