// Package bootstrap runs a service through its lifecycle: validate config,
// start components in order, run configure and ready hooks, wait for a
// signal, then stop everything in reverse within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storageComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    // wire handlers once infrastructure is up
//	    return nil
//	})
//	err = app.Run(ctx)
package bootstrap
