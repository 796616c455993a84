// Package server provides the HTTP server for sessionauth hosts: gin behind
// an h2c handler, with a standard middleware stack and health endpoints.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request id generation and propagation
//   - CORS: cross-origin configuration, credential aware
//   - BodySizeLimit: request body size limits
//   - RequestLogger: request logging with duration tracking
//   - ErrorHandler: renders errors attached with c.Error
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: aggregated readiness checks
//   - /info: build and version information
package server
