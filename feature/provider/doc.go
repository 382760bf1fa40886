// Package provider is the client side of the external order provider.
//
// The Client port has two variants chosen once at startup by New:
//
//   - PortalClient speaks HTTPS+JSON with bearer tokens obtained through a
//     client-credentials exchange and cached by TokenCache.
//   - SimulatedClient keeps orders in memory and always succeeds.
//
// # Errors
//
// Credential failures wrap ErrAuth. Transport failures, timeouts, unexpected
// status codes (as *StatusError) and malformed payloads wrap ErrProvider.
// An unknown order is not an error: FetchOrder returns (nil, nil) and
// DeleteOrder returns (false, nil).
//
// A 401 from the provider is reported as a StatusError and does not force a
// token refresh; the cached token is reused until it expires or Invalidate is
// called.
package provider
