// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: assigns a request id (RayID) to every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Bearer auth lives with the portal feature, since it validates tokens
//     that feature issues.
package middleware
