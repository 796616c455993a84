// Package bootstrap runs a service through its lifecycle: typed config
// validation, logger setup, start and ready hooks, blocking until
// SIGINT/SIGTERM, then stop hooks within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    srv := server.New(a.Cfg.Server, a.Logger)
//	    a.OnReady(srv.Start)
//	    a.OnStop(srv.Stop)
//	    return nil
//	})
//	err = app.Run(ctx)
package bootstrap
