package sse

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrClientDisconnected is returned by sends on a client that the registry
// has already removed.
var ErrClientDisconnected = errors.New("sse: client disconnected")

// Client is one live event-stream connection. Implementations are owned by
// the transport and must be pointer types: the registry compares entries by
// identity.
//
// Each send blocks until the bytes are written or the send fails. The
// broadcaster runs sends on their own goroutines, so implementations must be
// safe for concurrent use.
type Client interface {
	// ID is the registry key. It never changes.
	ID() uuid.UUID

	// IsConnected reports whether the client is still eligible for
	// broadcasts.
	IsConnected() bool

	// MarkDisconnected flips IsConnected to false. Only the registry calls
	// it, and it never flips back.
	MarkDisconnected()

	// SendBytes sends a data-only event carrying data.
	SendBytes(ctx context.Context, data []byte) error

	// SendEvent sends a structured event.
	SendEvent(ctx context.Context, event Event) error

	// ChangeReconnectInterval sends a retry field carrying interval, the
	// decimal milliseconds as UTF-8 text.
	ChangeReconnectInterval(ctx context.Context, interval []byte) error
}
