// Package component defines the lifecycle contract shared by the HTTP server
// and the SSE service.
//
// A Registry starts components in registration order, stops them in
// reverse order and aggregates their health for the /health endpoint.
package component
