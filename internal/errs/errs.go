// Package errs defines the error types the API layer understands.
//
// Handlers and services return these so the global error handler can
// pick a status code without guessing intent from a nil or a false:
//   - *HTTPError for outcomes the client caused (bad input, conflicts,
//     missing rows, failed credentials).
//   - *BackendError for failures of the store itself.
package errs
