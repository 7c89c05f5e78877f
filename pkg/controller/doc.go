// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds CORS headers for the allowed origins and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithRateLimit: Limits requests per client IP and answers 429 once a client runs out.
//   - WithRecover: Turns handler panics into a JSON 500.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers under /debug/pprof/.
//   - WriteJSON, WriteError: Encode JSON bodies and the {"error": "..."} envelope.
package controller
