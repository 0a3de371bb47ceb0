// Package middleware holds the Echo middleware shared by every route:
// request ids, the request-scoped logger, request logging, CORS, panic
// recovery, New Relic tracing, rate limiting, the optional function-key
// guard and the global error handler.
package middleware
