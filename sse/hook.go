package sse

import "context"

// ReconnectHandler is called when a client reconnects and reports the ID of
// the last event it received. An application uses it to replay what the
// client missed by sending directly to client.
type ReconnectHandler interface {
	OnReconnect(ctx context.Context, client Client, lastEventID string) error
}

// ReconnectFunc adapts a function to ReconnectHandler.
type ReconnectFunc func(ctx context.Context, client Client, lastEventID string) error

func (f ReconnectFunc) OnReconnect(ctx context.Context, client Client, lastEventID string) error {
	return f(ctx, client, lastEventID)
}

// NoopReconnect does nothing. It is the default handler.
var NoopReconnect ReconnectHandler = ReconnectFunc(func(context.Context, Client, string) error {
	return nil
})
