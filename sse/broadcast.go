package sse

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/observability"
)

// Operation is the per-client action of a broadcast round.
type Operation func(ctx context.Context, client Client) error

// Operation names used in logs, metrics and spans.
const (
	OpForAll                  = "for_all"
	OpSendText                = "send_text"
	OpSendEvent               = "send_event"
	OpChangeReconnectInterval = "change_reconnect_interval"
)

// DeliveryError is the failure of one client's send.
type DeliveryError struct {
	ClientID uuid.UUID
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("client %s: %v", e.ClientID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// BroadcastError reports a round in which at least one send failed. The
// remaining sends were still attempted and awaited.
type BroadcastError struct {
	Attempted int
	Errors    []*DeliveryError
}

func (e *BroadcastError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, de := range e.Errors {
		msgs[i] = de.Error()
	}
	return fmt.Sprintf("sse: %d of %d deliveries failed: %s", len(e.Errors), e.Attempted, strings.Join(msgs, "; "))
}

// Unwrap exposes every delivery failure to errors.Is and errors.As.
func (e *BroadcastError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, de := range e.Errors {
		errs[i] = de
	}
	return errs
}

// Failed returns the IDs of the clients whose send failed.
func (e *BroadcastError) Failed() []uuid.UUID {
	ids := make([]uuid.UUID, len(e.Errors))
	for i, de := range e.Errors {
		ids[i] = de.ClientID
	}
	return ids
}

// Broadcaster fans an operation out to every connected client.
type Broadcaster struct {
	registry *Registry
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewBroadcaster creates a broadcaster over registry. log and metrics may be
// nil.
func NewBroadcaster(registry *Registry, log *logger.Logger, metrics *observability.Metrics) *Broadcaster {
	if log == nil {
		log = logger.Get("sse")
	}
	return &Broadcaster{registry: registry, log: log, metrics: metrics}
}

// ForAll runs op for every client that is connected when the round starts.
// All sends are started before any is awaited, and ForAll returns only after
// each of them has returned. A failed or panicking send is reported in the
// returned *BroadcastError and never stops the others.
//
// ForAll has no timeout of its own; ctx is passed to each send.
func (b *Broadcaster) ForAll(ctx context.Context, op Operation) error {
	return b.run(ctx, OpForAll, op)
}

func (b *Broadcaster) run(ctx context.Context, name string, op Operation) error {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanBroadcast,
		trace.WithAttributes(attribute.String(observability.AttrOperation, name)))
	defer span.End()

	snapshot := b.registry.Snapshot()
	targets := snapshot[:0]
	for _, c := range snapshot {
		if c.IsConnected() {
			targets = append(targets, c)
		}
	}

	results := make([]error, len(targets))
	var wg sync.WaitGroup
	wg.Add(len(targets))
	for i, c := range targets {
		go func() {
			defer wg.Done()
			results[i] = deliver(ctx, c, op)
		}()
	}
	wg.Wait()

	var failures []*DeliveryError
	for i, err := range results {
		if err != nil {
			failures = append(failures, &DeliveryError{ClientID: targets[i].ID(), Err: err})
		}
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int(observability.AttrAttempted, len(targets)),
		attribute.Int(observability.AttrFailed, len(failures)),
	)
	b.metrics.RecordBroadcast(ctx, name, len(targets), len(failures), elapsed)

	fields := logger.RoundFields(name, len(targets), len(failures), elapsed)
	if len(failures) == 0 {
		b.log.Debug("Broadcast round completed", fields)
		return nil
	}

	err := &BroadcastError{Attempted: len(targets), Errors: failures}
	observability.SetSpanError(ctx, err)
	b.log.Warn("Broadcast round completed with failures", logger.MergeWithError(fields, err))
	return err
}

// deliver runs op for one client and turns a panic into that client's error.
func deliver(ctx context.Context, c Client, op Operation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sse: send panicked: %v", r)
		}
	}()
	return op(ctx, c)
}
