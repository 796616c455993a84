// Package middleware holds the gin middleware stack applied by
// server.ApplyMiddleware: panic recovery, request ids, request logging,
// error rendering, CORS and body size limits.
package middleware
