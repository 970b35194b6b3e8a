// Command ssed serves a Server-Sent Events stream with an admin API for
// broadcasting events and tuning the client reconnect interval.
//
// Usage:
//
//	ssed              run the server
//	ssed token NAME   print an admin token for NAME (requires auth.secret)
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/kbukum/ssehub/api"
	"github.com/kbukum/ssehub/auth"
	"github.com/kbukum/ssehub/bootstrap"
	"github.com/kbukum/ssehub/component"
	"github.com/kbukum/ssehub/config"
	"github.com/kbukum/ssehub/logger"
	"github.com/kbukum/ssehub/observability"
	"github.com/kbukum/ssehub/server"
	"github.com/kbukum/ssehub/server/middleware"
	"github.com/kbukum/ssehub/sse"
	"github.com/kbukum/ssehub/util"
)

const serviceName = "ssed"

// Client-supplied labels are cut to this many bytes.
const maxLabelLength = 128

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ssed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, config.WithEnvPrefix("SSEHUB")); err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "token":
			if len(args) != 2 {
				return fmt.Errorf("usage: ssed token NAME")
			}
			return printToken(cfg.Auth, args[1])
		default:
			return fmt.Errorf("unknown command %q", args[0])
		}
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	logger.RegisterDefaults("sse", "api", "auth")

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdownTelemetry))

	metrics, err := observability.NewMetrics(observability.Meter())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	srv, svc, err := build(&cfg, app.Logger, metrics, app.Components.HealthAll)
	if err != nil {
		return err
	}

	// The server is registered first so it stops last, after the sse
	// component has disconnected every stream.
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	if err := app.RegisterComponent(sse.NewComponent(svc, cfg.SSE.Path)); err != nil {
		return err
	}
	return app.Run(ctx)
}

// build wires the broadcast service, the stream handler and the admin API
// onto a new server.
func build(cfg *Config, log *logger.Logger, metrics *observability.Metrics, health func(context.Context) []component.Health) (*server.Server, *sse.Service, error) {
	opts := []sse.Option{
		sse.WithLogger(logger.Get("sse")),
		sse.WithMetrics(metrics),
		sse.WithReconnectHandler(sse.ReconnectFunc(logReconnect)),
	}
	if cfg.SSE.ReconnectInterval > 0 {
		opts = append(opts, sse.WithReconnectInterval(cfg.SSE.ReconnectInterval))
	}
	svc := sse.NewService(opts...)

	srv := server.New(cfg.Server, log, server.WithMetrics(metrics))
	srv.ApplyDefaults(cfg.Name, health)
	srv.Handle(cfg.SSE.Path, sse.NewHandler(svc, cfg.SSE, sse.WithClientOptions(clientOptions)))

	group := srv.Engine().Group("/api")
	if cfg.Auth.Enabled {
		tokens, err := auth.NewService(cfg.Auth)
		if err != nil {
			return nil, nil, err
		}
		group.Use(middleware.Auth(middleware.AuthConfig{Validator: tokens.Validator()}))
		logger.Get("auth").Info("Admin API protected", logger.Fields(
			"auth", cfg.Auth.Describe(),
			"secret", util.MaskSecret(cfg.Auth.Secret, 4),
		))
	} else {
		logger.Get("auth").Warn("Admin API is unauthenticated; set auth.enabled in production")
	}
	api.New(svc, cfg.API, logger.Get("api")).Register(group)

	return srv, svc, nil
}

// clientOptions tags a stream with the optional user_id and session_id
// query parameters and the caller's address.
func clientOptions(r *http.Request) []sse.ClientOption {
	q := r.URL.Query()
	opts := []sse.ClientOption{sse.WithMetadata("remote_addr", r.RemoteAddr)}
	if v := util.SanitizeLabel(q.Get("user_id"), maxLabelLength); v != "" {
		opts = append(opts, sse.WithUserID(v))
	}
	if v := util.SanitizeLabel(q.Get("session_id"), maxLabelLength); v != "" {
		opts = append(opts, sse.WithSessionID(v))
	}
	return opts
}

// logReconnect is the default reconnection hook. Events are not persisted,
// so a reconnecting client only gets new events.
func logReconnect(_ context.Context, client sse.Client, lastEventID string) error {
	logger.Get("sse").Info("Client resumed", logger.Fields(
		logger.FieldClientID, client.ID().String(),
		logger.FieldLastEventID, util.SanitizeLabel(lastEventID, maxLabelLength),
	))
	return nil
}

func printToken(cfg auth.Config, subject string) error {
	tokens, err := auth.NewService(cfg)
	if err != nil {
		return err
	}
	token, err := tokens.Generate(subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
