package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/rddkit/config"
	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	app, err := NewApp(newTestConfig("test", "1.0"), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	cfg := newTestConfig("test-svc", "1.0.0")
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Logger == nil {
		t.Error("expected non-nil logger")
	}
	if app.Summary == nil {
		t.Error("expected non-nil summary")
	}
	if app.Cfg.Logging.Level != "debug" {
		t.Errorf("expected defaults applied before validation, got level %q", app.Cfg.Logging.Level)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{
		ServiceConfig: config.ServiceConfig{Environment: "development"},
	}
	_, err := NewApp(cfg)
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for missing name, got %v", err)
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(30*time.Second))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
}

func TestDefaultGracefulTimeout(t *testing.T) {
	app := newTestApp(t)
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s timeout, got %v", app.gracefulTimeout)
	}
}

func TestRunTaskSuccess(t *testing.T) {
	app := newTestApp(t)
	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected task to run")
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	taskErr := fmt.Errorf("task failed")
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		return taskErr
	})
	if err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	var order []string

	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "test" {
			t.Errorf("expected typed config in configure, got %q", a.Cfg.Name)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "start,configure,task,stop"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRunTaskWithStartHookError(t *testing.T) {
	app := newTestApp(t)
	stopped := false
	app.OnStart(func(ctx context.Context) error { return fmt.Errorf("start failed") })
	app.OnStop(func(ctx context.Context) error {
		stopped = true
		return nil
	})

	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected onStart error, got %v", err)
	}
	if ran {
		t.Error("task must not run after a failed start")
	}
	if !stopped {
		t.Error("stop hooks must still run after a failed start")
	}
}

func TestRunTaskWithConfigureError(t *testing.T) {
	app := newTestApp(t)
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return fmt.Errorf("configure failed")
	})
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "configuration failed") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestRunTaskWithStopHookError(t *testing.T) {
	app := newTestApp(t)
	second := false
	app.OnStop(
		func(ctx context.Context) error { return fmt.Errorf("flush failed") },
		func(ctx context.Context) error {
			second = true
			return nil
		},
	)
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop hook error, got %v", err)
	}
	if !second {
		t.Error("expected every stop hook to run")
	}
}

func TestRunTaskErrorWinsOverStopError(t *testing.T) {
	app := newTestApp(t)
	app.OnStop(func(ctx context.Context) error { return fmt.Errorf("stop failed") })
	taskErr := fmt.Errorf("task failed")
	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr }); err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestHookErrorStopsExecution(t *testing.T) {
	second := false
	err := runHooks(context.Background(), []Hook{
		func(ctx context.Context) error { return fmt.Errorf("first") },
		func(ctx context.Context) error {
			second = true
			return nil
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if second {
		t.Error("expected execution to stop at the first failing hook")
	}
}

func TestShutdown(t *testing.T) {
	app := newTestApp(t)
	called := false
	app.OnStop(func(ctx context.Context) error {
		called = true
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected stop context to carry the graceful deadline")
		}
		return nil
	})
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("expected stop hook to run")
	}
}

func TestSummaryTrackStep(t *testing.T) {
	s := NewSummary("svc", "1.0.0")
	s.TrackStep("basics", StepOK, 12, time.Millisecond)
	s.TrackStep("students", StepFailed, 0, time.Millisecond)

	if len(s.Steps()) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(s.Steps()))
	}
	if s.Steps()[0].Records != 12 {
		t.Errorf("expected 12 records, got %d", s.Steps()[0].Records)
	}
	if s.Failed() != 1 {
		t.Errorf("expected 1 failed step, got %d", s.Failed())
	}
}

func TestSummaryDisplay(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "svc", &buf)

	s := NewSummary("svc", "1.0.0")
	s.TrackStep("basics", StepOK, 1200, time.Millisecond)
	s.SetTaskDuration(2 * time.Second)
	s.Display(log)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "run finished" {
		t.Errorf("expected run summary message, got %v", entry["message"])
	}
	if entry[logger.FieldRecords] != "1,200" {
		t.Errorf("expected humanized record count, got %v", entry[logger.FieldRecords])
	}
	if entry["elapsed"] != "2s" {
		t.Errorf("expected elapsed 2s, got %v", entry["elapsed"])
	}
}
