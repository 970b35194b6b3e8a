package api

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/resilience"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/server/middleware"
	"github.com/kbukum/ssehub/sse"
)

// Handlers serves the admin API for one Service.
type Handlers struct {
	service *sse.Service
	log     *logger.Logger
	limiter *resilience.RateLimiter
}

// New creates the admin handlers. Zero fields of cfg take their defaults.
func New(service *sse.Service, cfg Config, log *logger.Logger) *Handlers {
	if log == nil {
		log = logger.Get("api")
	}
	cfg.ApplyDefaults()
	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Name:  "broadcast",
		Rate:  cfg.BroadcastRate,
		Burst: cfg.BroadcastBurst,
		OnLimit: func(name string) {
			log.Warn("Broadcast rate limit hit", logger.Fields("limiter", name))
		},
	})
	return &Handlers{service: service, log: log, limiter: limiter}
}

// Register mounts the routes on group, typically /api behind auth. Routes
// that trigger a broadcast share one rate limiter.
func (h *Handlers) Register(group *gin.RouterGroup) {
	limit := middleware.RateLimit(h.limiter, "broadcast")

	group.GET("/clients", h.ListClients)
	group.GET("/clients/:id", h.GetClient)
	group.POST("/events", limit, h.SendEvent)
	group.GET("/reconnect-interval", h.GetReconnectInterval)
	group.PUT("/reconnect-interval", limit, h.PutReconnectInterval)
}

// respondBroadcastError maps a partial broadcast failure to
// DELIVERY_FAILED and passes anything else through.
func (h *Handlers) respondBroadcastError(c *gin.Context, op string, err error) {
	var be *sse.BroadcastError
	if !stderrors.As(err, &be) {
		server.RespondWithError(c, err)
		return
	}

	failed := make([]string, len(be.Errors))
	for i, de := range be.Errors {
		failed[i] = de.ClientID.String()
	}
	h.log.WithContext(c.Request.Context()).Warn("Admin broadcast partially failed", logger.Fields(
		logger.FieldOperation, op,
		logger.FieldAttempted, be.Attempted,
		logger.FieldFailed, len(failed),
	))
	server.RespondWithError(c, errors.DeliveryFailed(len(failed), be.Attempted, err).WithDetail("failed_clients", failed))
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.InvalidInput("body", err.Error())
	}
	return nil
}
