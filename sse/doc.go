// Package sse broadcasts Server-Sent Events to every connected client.
//
// A Service owns a sharded Registry of clients. Broadcasts take a snapshot
// of the registry, start one send per connected client, and wait for all of
// them; failed sends are collected into a *BroadcastError instead of
// stopping the round. The reconnect interval is stored once and pushed to
// every client, and a ReconnectHandler may replay missed events when a
// client reconnects with a Last-Event-ID.
//
// # Usage
//
//	svc := sse.NewService(sse.WithReconnectInterval(5000))
//	mux.Handle("/events", sse.NewHandler(svc, cfg))
//
//	err := svc.SendEvent(ctx, sse.Event{Type: "price", Data: `{"eur":1.08}`})
//	var be *sse.BroadcastError
//	if errors.As(err, &be) {
//	    log.Printf("undelivered: %v", be.Failed())
//	}
package sse
