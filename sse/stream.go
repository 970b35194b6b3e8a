package sse

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// StreamClient is a Client writing to an HTTP response. Frames are written
// one at a time and flushed immediately.
type StreamClient struct {
	id          uuid.UUID
	w           http.ResponseWriter
	rc          *http.ResponseController
	sendTimeout time.Duration
	metadata    map[string]string

	// writeLock is a one-slot semaphore so waiting writers can give up on
	// ctx or disconnect.
	writeLock chan struct{}
	connected atomic.Bool
	done      chan struct{}
	doneOnce  sync.Once
}

var _ Client = (*StreamClient)(nil)

// ClientOption configures a StreamClient.
type ClientOption func(*StreamClient)

// WithClientID sets the client ID instead of a random one.
func WithClientID(id uuid.UUID) ClientOption {
	return func(c *StreamClient) { c.id = id }
}

// WithSendTimeout bounds each write. Zero means no deadline.
func WithSendTimeout(d time.Duration) ClientOption {
	return func(c *StreamClient) { c.sendTimeout = d }
}

// WithMetadata adds a metadata key-value pair to the client.
func WithMetadata(key, value string) ClientOption {
	return func(c *StreamClient) {
		c.metadata[key] = value
	}
}

// WithUserID sets the user ID metadata.
func WithUserID(userID string) ClientOption {
	return WithMetadata("user_id", userID)
}

// WithSessionID sets the session ID metadata.
func WithSessionID(sessionID string) ClientOption {
	return WithMetadata("session_id", sessionID)
}

// NewStreamClient creates a connected client writing to w. w must support
// flushing.
func NewStreamClient(w http.ResponseWriter, opts ...ClientOption) *StreamClient {
	c := &StreamClient{
		id:        uuid.New(),
		w:         w,
		rc:        http.NewResponseController(w),
		metadata:  make(map[string]string),
		writeLock: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.connected.Store(true)
	return c
}

func (c *StreamClient) ID() uuid.UUID { return c.id }

func (c *StreamClient) IsConnected() bool { return c.connected.Load() }

// MarkDisconnected stops further sends and closes Done.
func (c *StreamClient) MarkDisconnected() {
	c.connected.Store(false)
	c.doneOnce.Do(func() { close(c.done) })
}

// Done is closed once the client is marked disconnected.
func (c *StreamClient) Done() <-chan struct{} { return c.done }

// Metadata returns a copy of the client metadata.
func (c *StreamClient) Metadata() map[string]string { return maps.Clone(c.metadata) }

// GetMetadata returns a specific metadata value.
func (c *StreamClient) GetMetadata(key string) string { return c.metadata[key] }

// UserID returns the client's user ID.
func (c *StreamClient) UserID() string { return c.metadata["user_id"] }

// SessionID returns the client's session ID.
func (c *StreamClient) SessionID() string { return c.metadata["session_id"] }

func (c *StreamClient) SendBytes(ctx context.Context, data []byte) error {
	return c.write(ctx, EncodeData(data))
}

func (c *StreamClient) SendEvent(ctx context.Context, event Event) error {
	return c.write(ctx, Encode(event))
}

func (c *StreamClient) ChangeReconnectInterval(ctx context.Context, interval []byte) error {
	return c.write(ctx, EncodeRetry(interval))
}

// SendComment writes a comment frame. The transport uses it for
// keep-alives.
func (c *StreamClient) SendComment(ctx context.Context, text string) error {
	return c.write(ctx, EncodeComment(text))
}

func (c *StreamClient) write(ctx context.Context, frame []byte) error {
	if !c.IsConnected() {
		return ErrClientDisconnected
	}
	select {
	case c.writeLock <- struct{}{}:
	case <-c.done:
		return ErrClientDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
	defer c.unlock()

	// Re-check: the handler may have returned while we waited.
	if !c.IsConnected() {
		return ErrClientDisconnected
	}
	return c.writeFrame(frame)
}

// writeFrame writes and flushes one frame. The caller holds the write lock.
func (c *StreamClient) writeFrame(frame []byte) error {
	if c.sendTimeout > 0 {
		_ = c.rc.SetWriteDeadline(time.Now().Add(c.sendTimeout))
		defer func() { _ = c.rc.SetWriteDeadline(time.Time{}) }()
	}
	if _, err := c.w.Write(frame); err != nil {
		return fmt.Errorf("sse: write to client %s: %w", c.id, err)
	}
	if err := c.rc.Flush(); err != nil {
		return fmt.Errorf("sse: flush to client %s: %w", c.id, err)
	}
	return nil
}

func (c *StreamClient) lock()   { c.writeLock <- struct{}{} }
func (c *StreamClient) unlock() { <-c.writeLock }

// drain waits for an in-flight write and blocks all later ones. The handler
// calls it after deregistering so nothing writes to a finished response.
func (c *StreamClient) drain() { c.lock() }
