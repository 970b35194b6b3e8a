package sse

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// fakeClient records every send. A non-nil gate makes each send signal
// started and then wait for the gate to close.
type fakeClient struct {
	id        uuid.UUID
	connected atomic.Bool
	err       error
	gate      chan struct{}
	started   chan uuid.UUID

	mu        sync.Mutex
	bytes     [][]byte
	events    []Event
	intervals [][]byte
	calls     int
}

func newFakeClient() *fakeClient {
	c := &fakeClient{id: uuid.New()}
	c.connected.Store(true)
	return c
}

func (c *fakeClient) ID() uuid.UUID { return c.id }

func (c *fakeClient) IsConnected() bool { return c.connected.Load() }

func (c *fakeClient) MarkDisconnected() { c.connected.Store(false) }

func (c *fakeClient) sendCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *fakeClient) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

func (c *fakeClient) SendBytes(_ context.Context, data []byte) error {
	return c.record(func() { c.bytes = append(c.bytes, data) })
}

func (c *fakeClient) SendEvent(_ context.Context, event Event) error {
	return c.record(func() { c.events = append(c.events, event) })
}

func (c *fakeClient) ChangeReconnectInterval(_ context.Context, interval []byte) error {
	return c.record(func() { c.intervals = append(c.intervals, interval) })
}

func (c *fakeClient) record(fn func()) error {
	c.mu.Lock()
	c.calls++
	fn()
	c.mu.Unlock()
	if c.gate != nil {
		c.started <- c.id
		<-c.gate
	}
	return c.err
}
