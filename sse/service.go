package sse

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/observability"
)

// Service is the entry point to the broadcast core. It owns one registry;
// nothing is shared between Service values.
type Service struct {
	registry    *Registry
	broadcaster *Broadcaster
	interval    *ReconnectIntervalManager
	reconnect   ReconnectHandler
	log         *logger.Logger
	metrics     *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithReconnectHandler sets the handler called by OnReconnect.
func WithReconnectHandler(h ReconnectHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.reconnect = h
		}
	}
}

// WithLogger sets the logger. The default is logger.Get("sse").
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics records broadcast and registration metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithReconnectInterval sets the initial reconnect interval in
// milliseconds. It is pushed to clients as they connect.
func WithReconnectInterval(ms uint32) Option {
	return func(s *Service) { s.interval.Set(ms) }
}

// NewService creates a Service with an empty registry.
func NewService(opts ...Option) *Service {
	s := &Service{
		registry:  NewRegistry(),
		reconnect: NoopReconnect,
		log:       logger.Get("sse"),
	}
	// The interval manager exists before options run so
	// WithReconnectInterval can set it; its broadcaster is bound after.
	s.interval = NewReconnectIntervalManager(nil)
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get("sse")
	}
	s.broadcaster = NewBroadcaster(s.registry, s.log, s.metrics)
	s.interval.broadcaster = s.broadcaster
	return s
}

// Broadcaster returns the broadcaster over the service's registry.
func (s *Service) Broadcaster() *Broadcaster { return s.broadcaster }

// GetClient returns the client registered under id.
func (s *Service) GetClient(id uuid.UUID) (Client, bool) {
	return s.registry.Get(id)
}

// GetClients returns a snapshot of all registered clients in no particular
// order.
func (s *Service) GetClients() []Client {
	return s.registry.Snapshot()
}

// ClientCount returns the number of registered clients.
func (s *Service) ClientCount() int {
	return s.registry.Len()
}

// ConnectedCount returns how many registered clients are still connected,
// which is the number a broadcast started now would reach. Clients marked
// disconnected by a racing removal are not counted.
func (s *Service) ConnectedCount() int {
	n := 0
	for _, c := range s.registry.Snapshot() {
		if c.IsConnected() {
			n++
		}
	}
	return n
}

// ReconnectInterval returns the current reconnect interval.
func (s *Service) ReconnectInterval() (uint32, bool) {
	return s.interval.Current()
}

// EncodedReconnectInterval returns the current interval as decimal text.
func (s *Service) EncodedReconnectInterval() ([]byte, bool) {
	return s.interval.Encoded()
}

// ChangeReconnectInterval stores ms and pushes it to every connected
// client. The new value is kept even if the push partly fails.
func (s *Service) ChangeReconnectInterval(ctx context.Context, ms uint32) error {
	s.log.Info("Changing reconnect interval", logger.Fields(logger.FieldReconnectInterval, ms))
	return s.interval.Change(ctx, ms)
}

// SendText sends text as a data-only event to every connected client.
func (s *Service) SendText(ctx context.Context, text string) error {
	data := []byte(text)
	return s.broadcaster.run(ctx, OpSendText, func(ctx context.Context, c Client) error {
		return c.SendBytes(ctx, data)
	})
}

// SendEvent sends event to every connected client. An invalid event is
// rejected before any send.
func (s *Service) SendEvent(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	return s.broadcaster.run(ctx, OpSendEvent, func(ctx context.Context, c Client) error {
		return c.SendEvent(ctx, event)
	})
}

// OnReconnect hands a reconnecting client to the configured
// ReconnectHandler.
func (s *Service) OnReconnect(ctx context.Context, client Client, lastEventID string) error {
	s.log.Debug("Client reconnected", logger.Fields(
		logger.FieldClientID, client.ID().String(),
		logger.FieldLastEventID, lastEventID,
	))
	return s.reconnect.OnReconnect(ctx, client, lastEventID)
}

// RegisterClient adds client to the registry. It is meant for the transport.
// A taken ID returns an ALREADY_EXISTS error and keeps the existing client.
func (s *Service) RegisterClient(client Client) error {
	if !s.registry.Add(client) {
		s.log.Warn("Duplicate client registration rejected", logger.ClientFields(client.ID().String(), "register"))
		return errors.AlreadyExists("sse client", client.ID().String())
	}
	s.metrics.ClientRegistered(context.Background())
	s.log.Debug("Client registered", logger.Fields(
		logger.FieldClientID, client.ID().String(),
		logger.FieldTotalClients, s.registry.Len(),
	))
	return nil
}

// DeregisterClient marks client disconnected and removes it. It is meant
// for the transport and is safe to call more than once.
func (s *Service) DeregisterClient(client Client) {
	if !s.registry.Remove(client) {
		return
	}
	s.metrics.ClientDeregistered(context.Background())
	s.log.Debug("Client deregistered", logger.Fields(
		logger.FieldClientID, client.ID().String(),
		logger.FieldTotalClients, s.registry.Len(),
	))
}

// DisconnectAll deregisters every client and returns how many were
// registered. Transport loops see their client's Done channel close and
// exit.
func (s *Service) DisconnectAll() int {
	clients := s.registry.Snapshot()
	for _, c := range clients {
		s.DeregisterClient(c)
	}
	if len(clients) > 0 {
		s.log.Info("Disconnected all clients", logger.Fields(logger.FieldTotalClients, len(clients)))
	}
	return len(clients)
}
