// Package bootstrap runs finite rddkit programs with a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// global logger. RunTask then runs OnStart hooks, configure callbacks, the
// task itself (canceled on SIGINT/SIGTERM) and finally OnStop hooks.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx, app)
//	})
package bootstrap
