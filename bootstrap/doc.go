// Package bootstrap runs an ssehub process: it validates the typed
// configuration, initializes the global logger, starts registered
// components in order, blocks until SIGINT/SIGTERM and stops everything in
// reverse order within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.RegisterComponent(sse.NewComponent(svc, cfg.SSE.Path))
//	err = app.Run(ctx)
package bootstrap
