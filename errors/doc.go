// Package errors provides the structured error type shared by the ssehub
// packages. AppError carries a machine-readable code, an HTTP status mapping
// and retryable detection; the HTTP layer renders it with ToResponse.
package errors
