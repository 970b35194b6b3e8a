package sse

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/logger"
)

// LastEventIDHeader is sent by EventSource when it reconnects.
const LastEventIDHeader = "Last-Event-ID"

// lastEventIDParam carries the last event ID for clients that cannot set
// headers.
const lastEventIDParam = "lastEventId"

// ConnectedEvent is the payload of the connected event.
type ConnectedEvent struct {
	ClientID  string            `json:"client_id"`
	UserID    string            `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Handler serves the event stream. Each request becomes a StreamClient that
// stays registered with the Service until the request ends or the client is
// disconnected.
type Handler struct {
	service    *Service
	cfg        Config
	log        *logger.Logger
	clientOpts func(*http.Request) []ClientOption
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithClientOptions derives per-request client options, such as
// WithUserID from an authenticated request.
func WithClientOptions(fn func(*http.Request) []ClientOption) HandlerOption {
	return func(h *Handler) { h.clientOpts = fn }
}

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(l *logger.Logger) HandlerOption {
	return func(h *Handler) { h.log = l }
}

// NewHandler creates a stream handler for service.
func NewHandler(service *Service, cfg Config, opts ...HandlerOption) *Handler {
	cfg.ApplyDefaults()
	h := &Handler{
		service: service,
		cfg:     cfg,
		log:     logger.Get("sse"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		h.log.Error("Streaming not supported", logger.Fields(logger.FieldRemoteAddr, r.RemoteAddr))
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Long-lived stream: the server WriteTimeout must not apply. Each send
	// sets its own deadline instead.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.log.Debug("Could not clear write deadline", logger.Fields(logger.FieldError, err.Error()))
	}

	opts := []ClientOption{WithSendTimeout(h.cfg.SendTimeout)}
	if h.clientOpts != nil {
		opts = append(opts, h.clientOpts(r)...)
	}
	client := NewStreamClient(w, opts...)

	ctx := r.Context()
	clientID := client.ID().String()

	// Hold the write lock until the stream is set up so a concurrent
	// broadcast cannot write before the headers and greeting frames.
	client.lock()
	if err := h.service.RegisterClient(client); err != nil {
		client.unlock()
		writeJSONError(w, errors.Wrap(err))
		return
	}
	defer func() {
		h.service.DeregisterClient(client)
		client.drain()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	err := h.greet(client)
	client.unlock()
	if err != nil {
		h.log.Debug("Stream setup failed", logger.MergeWithError(logger.ClientFields(clientID, "connect"), err))
		return
	}

	h.log.Debug("Client connected", logger.Fields(
		logger.FieldClientID, clientID,
		"user_id", client.UserID(),
		logger.FieldRemoteAddr, r.RemoteAddr,
	))

	if lastEventID, ok := lastEventID(r); ok {
		if err := h.service.OnReconnect(ctx, client, lastEventID); err != nil {
			h.log.Warn("Reconnect handler failed", logger.MergeWithError(logger.Fields(
				logger.FieldClientID, clientID,
				logger.FieldLastEventID, lastEventID,
			), err))
		}
	}

	keepAlive := time.NewTicker(h.cfg.KeepaliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug("Client disconnected", logger.Fields(logger.FieldClientID, clientID, "reason", ctx.Err().Error()))
			return
		case <-client.Done():
			h.log.Debug("Client closed by server", logger.ClientFields(clientID, "disconnect"))
			return
		case <-keepAlive.C:
			if err := client.SendComment(ctx, EventTypeKeepAlive); err != nil {
				h.log.Debug("Keep-alive failed", logger.MergeWithError(logger.ClientFields(clientID, "keepalive"), err))
				return
			}
		}
	}
}

// greet writes the current reconnect interval and the connected event. The
// caller holds the client's write lock.
func (h *Handler) greet(client *StreamClient) error {
	if interval, ok := h.service.EncodedReconnectInterval(); ok {
		if err := client.writeFrame(EncodeRetry(interval)); err != nil {
			return err
		}
	}
	if h.cfg.SkipConnectedEvent {
		return client.rc.Flush()
	}
	payload, err := json.Marshal(ConnectedEvent{
		ClientID:  client.ID().String(),
		UserID:    client.UserID(),
		SessionID: client.SessionID(),
		Metadata:  client.Metadata(),
	})
	if err != nil {
		return err
	}
	return client.writeFrame(Encode(Event{Type: EventTypeConnected, Data: string(payload)}))
}

// lastEventID returns the ID a reconnecting client reports. The header
// wins over the query parameter.
func lastEventID(r *http.Request) (string, bool) {
	if v := r.Header.Get(LastEventIDHeader); v != "" {
		return v, true
	}
	if v := r.URL.Query().Get(lastEventIDParam); v != "" {
		return v, true
	}
	return "", false
}

func writeJSONError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}
