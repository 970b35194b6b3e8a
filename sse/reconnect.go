package sse

import (
	"context"
	"strconv"
	"sync/atomic"
)

// ReconnectIntervalManager holds the reconnect interval, in milliseconds,
// that clients are told to wait before reconnecting.
type ReconnectIntervalManager struct {
	interval    atomic.Pointer[uint32]
	broadcaster *Broadcaster
}

// NewReconnectIntervalManager creates a manager with no interval set.
func NewReconnectIntervalManager(broadcaster *Broadcaster) *ReconnectIntervalManager {
	return &ReconnectIntervalManager{broadcaster: broadcaster}
}

// Set stores value without notifying connected clients.
func (m *ReconnectIntervalManager) Set(value uint32) {
	m.interval.Store(&value)
}

// Change stores value and pushes it to every connected client. The stored
// value is kept even when some pushes fail.
func (m *ReconnectIntervalManager) Change(ctx context.Context, value uint32) error {
	m.Set(value)
	encoded := EncodeInterval(value)
	return m.broadcaster.run(ctx, OpChangeReconnectInterval, func(ctx context.Context, c Client) error {
		return c.ChangeReconnectInterval(ctx, encoded)
	})
}

// Current returns the stored interval. ok is false until one is set.
func (m *ReconnectIntervalManager) Current() (value uint32, ok bool) {
	p := m.interval.Load()
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Encoded returns the stored interval as decimal text.
func (m *ReconnectIntervalManager) Encoded() ([]byte, bool) {
	v, ok := m.Current()
	if !ok {
		return nil, false
	}
	return EncodeInterval(v), true
}

// EncodeInterval returns value as decimal UTF-8 text, e.g. 5000 -> "5000".
func EncodeInterval(value uint32) []byte {
	return strconv.AppendUint(nil, uint64(value), 10)
}
