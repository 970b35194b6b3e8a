package sse

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStreamClient_Sends(t *testing.T) {
	rec := httptest.NewRecorder()
	c := NewStreamClient(rec, WithUserID("u1"), WithSessionID("s1"))
	ctx := context.Background()

	if err := c.ChangeReconnectInterval(ctx, []byte("5000")); err != nil {
		t.Fatal(err)
	}
	if err := c.SendBytes(ctx, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := c.SendEvent(ctx, Event{ID: "1", Type: "price", Data: "1.08"}); err != nil {
		t.Fatal(err)
	}
	if err := c.SendComment(ctx, EventTypeKeepAlive); err != nil {
		t.Fatal(err)
	}

	want := "retry: 5000\n\n" +
		"data: hello\n\n" +
		"id: 1\nevent: price\ndata: 1.08\n\n" +
		": keepalive\n\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if !rec.Flushed {
		t.Error("expected frames to be flushed")
	}
	if c.UserID() != "u1" || c.SessionID() != "s1" {
		t.Errorf("unexpected metadata %v", c.Metadata())
	}
}

func TestStreamClient_WithClientID(t *testing.T) {
	id := uuid.New()
	if got := NewStreamClient(httptest.NewRecorder(), WithClientID(id)).ID(); got != id {
		t.Errorf("expected %s, got %s", id, got)
	}
}

func TestStreamClient_SendAfterDisconnect(t *testing.T) {
	rec := httptest.NewRecorder()
	c := NewStreamClient(rec)
	c.MarkDisconnected()

	if err := c.SendBytes(context.Background(), []byte("x")); !errors.Is(err, ErrClientDisconnected) {
		t.Errorf("expected ErrClientDisconnected, got %v", err)
	}
	select {
	case <-c.Done():
	default:
		t.Error("expected Done to be closed")
	}
	// Idempotent.
	c.MarkDisconnected()
	if rec.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %q", rec.Body.String())
	}
}

func TestStreamClient_WaitingWriterHonorsContext(t *testing.T) {
	c := NewStreamClient(httptest.NewRecorder())
	c.lock()
	defer c.unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.SendBytes(ctx, []byte("x")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestStreamClient_WaitingWriterReleasedOnDisconnect(t *testing.T) {
	c := NewStreamClient(httptest.NewRecorder())
	c.lock()

	errc := make(chan error, 1)
	go func() { errc <- c.SendBytes(context.Background(), []byte("x")) }()

	c.MarkDisconnected()
	select {
	case err := <-errc:
		if !errors.Is(err, ErrClientDisconnected) {
			t.Errorf("expected ErrClientDisconnected, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("writer was not released by disconnect")
	}
}
