// Package server builds the HTTP server shared by the portal command.
//
// Config carries the port and limits. New returns a Fiber application with
// the ray id middleware, zap access logs and the swagger UI already mounted;
// features are loaded on top of it through core/loader.
package server
