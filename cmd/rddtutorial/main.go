// Command rddtutorial replays the basic data manipulation walkthrough on the
// rddkit collection engine.
//
//	rddtutorial --scenario students --format json
//	RDD_ENGINE_MASTER='local[4]' rddtutorial --config ./tutorial.yml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/rddkit/bootstrap"
	"github.com/kbukum/rddkit/config"
	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/internal/tutorial"
	"github.com/kbukum/rddkit/observability"
	"github.com/kbukum/rddkit/rdd"
	"github.com/kbukum/rddkit/version"
)

const serviceName = "rddtutorial"

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"scenario":   "scenarios",
	"format":     "format",
	"partitions": "engine.default_parallelism",
	"master":     "engine.master",
	"log-level":  "logging.level",
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to a config.yml")
	envFile := fs.String("env-file", "", "path to a .env file")
	fs.StringSlice("scenario", nil, "scenarios to run (basics, temperatures, students)")
	fs.String("format", tutorial.FormatText, "output format (text, json)")
	fs.Int("partitions", 0, "default parallelism of the engine")
	fs.String("master", "", "engine master URL (local, local[N], local[*])")
	fs.String("log-level", "", "log level")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		format := fs.Lookup("format").Value.String()
		report(stderr, format, errors.InvalidArgument("flags", err.Error()))
		if format != tutorial.FormatJSON {
			fs.Usage()
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Get().String())
		return 0
	}

	var cfg tutorial.Config
	err := config.LoadConfig(serviceName, &cfg,
		config.WithConfigFile(*configFile),
		config.WithEnvFile(*envFile),
		config.WithEnvPrefix("RDD"),
		config.WithFlags(fs, flagKeys),
	)
	if err != nil {
		return fail(stderr, cfg.Format, err)
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return fail(stderr, cfg.Format, err)
	}

	var runner *tutorial.Runner
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*tutorial.Config]) error {
		sc, err := newEngine(ctx, a)
		if err != nil {
			return err
		}
		a.OnStop(func(context.Context) error {
			sc.Stop()
			return nil
		})
		runner = tutorial.NewRunner(sc, a.Cfg.Dataset, a.Logger, func(name string, records int, d time.Duration, err error) {
			status := bootstrap.StepOK
			if err != nil {
				status = bootstrap.StepFailed
			}
			a.Summary.TrackStep(name, status, records, d)
		})
		return nil
	})

	err = app.RunTask(ctx, func(ctx context.Context) error {
		report, err := runner.Run(ctx, cfg.Scenarios)
		if err != nil {
			return err
		}
		return tutorial.Render(stdout, report, cfg.Format)
	})
	if err != nil {
		return fail(stderr, cfg.Format, err)
	}
	return 0
}

// newEngine builds the execution context with telemetry wired in. Exporting
// providers are flushed by OnStop hooks.
func newEngine(ctx context.Context, a *bootstrap.App[*tutorial.Config]) (*rdd.Context, error) {
	cfg := a.Cfg
	var tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer(observability.InstrumentationName)
	meter := metricnoop.NewMeterProvider().Meter(observability.InstrumentationName)

	if cfg.Observability.Enabled {
		tcfg := cfg.Observability.TracerConfig(cfg.Name, cfg.Version, cfg.Environment)
		tp, err := observability.InitTracer(ctx, &tcfg)
		if err != nil {
			return nil, err
		}
		a.OnStop(tp.Shutdown)

		mcfg := cfg.Observability.MeterConfig(cfg.Name, cfg.Version, cfg.Environment)
		mp, err := observability.InitMeter(ctx, &mcfg)
		if err != nil {
			return nil, err
		}
		a.OnStop(mp.Shutdown)

		tracer = tp.Tracer(observability.InstrumentationName)
		meter = mp.Meter(observability.InstrumentationName)
	}

	metrics, err := observability.NewStageMetrics(meter)
	if err != nil {
		return nil, err
	}
	return rdd.NewContext(cfg.Engine,
		rdd.WithLogger(a.Logger),
		rdd.WithTracer(tracer),
		rdd.WithMetrics(metrics),
	)
}

// fail reports err and returns the exit code of a failed run.
func fail(w io.Writer, format string, err error) int {
	report(w, format, err)
	return 1
}

// report writes err to w as an error envelope in json format, or as a
// single line otherwise.
func report(w io.Writer, format string, err error) {
	if format == tutorial.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errors.Wrap(err).ToResponse())
		return
	}
	fmt.Fprintf(w, "%s: %v\n", serviceName, err)
}
