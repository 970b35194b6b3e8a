// Package server provides the HTTP server for ssehub: a Gin engine for the
// admin API mounted on a ServeMux that also carries the raw event stream,
// served over HTTP/1.1 and cleartext HTTP/2 (h2c).
//
// Middleware (server/middleware) wraps every route at the net/http level:
// request ID, CORS, body-size limit and request logging. Gin routes add
// panic recovery, and the admin group adds bearer-token authentication.
//
// Endpoints (server/endpoint):
//
//   - /health, /ready, /alive: component health and probes
//   - /info: build version
//   - /api/...: client listing, broadcasts and the reconnect interval
package server
