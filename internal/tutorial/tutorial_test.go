package tutorial

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rddkit/config"
	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/rdd"
)

func newRunner(t *testing.T, observe StepObserver) *Runner {
	t.Helper()
	sc, err := rdd.NewContext(rdd.Config{AppName: "tutorial-test", Master: "local[2]"})
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	var data Dataset
	data.ApplyDefaults()
	return NewRunner(sc, data, nil, observe)
}

func ids(as []Average) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.StudentID
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFahrenheitToCentigrade(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{59, 15},
		{57.2, 14.000000000000002},
		{53.6, 12},
		{55.4, 13},
		{51.8, 10.999999999999998},
		{32, 0},
	}
	for _, tt := range tests {
		if got := FahrenheitToCentigrade(tt.in); got != tt.want {
			t.Errorf("FahrenheitToCentigrade(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunner_Basics(t *testing.T) {
	b, err := newRunner(t, nil).Basics(context.Background())
	if err != nil {
		t.Fatalf("Basics failed: %v", err)
	}
	if len(b.Collected) != 12 || b.Collected[0] != 1 || b.Collected[11] != 12 {
		t.Errorf("Collected = %v", b.Collected)
	}
	if b.First != 1 {
		t.Errorf("First = %d, want 1", b.First)
	}
	if len(b.TakeTwo) != 2 || b.TakeTwo[0] != 1 || b.TakeTwo[1] != 2 {
		t.Errorf("TakeTwo = %v", b.TakeTwo)
	}
	if b.Sum != 78 {
		t.Errorf("Sum = %d, want 78", b.Sum)
	}
	if b.EmptyRDDPartitions != 0 {
		t.Errorf("EmptyRDDPartitions = %d, want 0", b.EmptyRDDPartitions)
	}
	if b.DefaultPartitions != 2 {
		t.Errorf("DefaultPartitions = %d, want 2", b.DefaultPartitions)
	}
	if b.ExplicitPartitions != 10 {
		t.Errorf("ExplicitPartitions = %d, want 10", b.ExplicitPartitions)
	}
	if b.EmptyPartitions != 10 || b.EmptyCount != 0 {
		t.Errorf("empty = %d partitions, %d records", b.EmptyPartitions, b.EmptyCount)
	}
	if b.EmptyFirstError != string(errors.ErrCodeEmptyCollection) {
		t.Errorf("EmptyFirstError = %q", b.EmptyFirstError)
	}
}

func TestRunner_Temperatures(t *testing.T) {
	tr, err := newRunner(t, nil).Temperatures(context.Background())
	if err != nil {
		t.Fatalf("Temperatures failed: %v", err)
	}
	want := []float64{15, 14.000000000000002, 13, 13}
	if len(tr.AtLeast) != len(want) {
		t.Fatalf("AtLeast = %v, want %v", tr.AtLeast, want)
	}
	for i := range want {
		if tr.AtLeast[i] != want[i] {
			t.Errorf("AtLeast[%d] = %v, want %v", i, tr.AtLeast[i], want[i])
		}
	}
	if len(tr.Celsius) != 7 {
		t.Errorf("len(Celsius) = %d, want 7", len(tr.Celsius))
	}
	if tr.Partitions != 2 {
		t.Errorf("Partitions = %d, want 2", tr.Partitions)
	}
}

func TestRunner_Students(t *testing.T) {
	s, err := newRunner(t, nil).Students(context.Background())
	if err != nil {
		t.Fatalf("Students failed: %v", err)
	}
	if len(s.Averages) != 14 {
		t.Errorf("len(Averages) = %d, want 14", len(s.Averages))
	}
	if len(s.Sample) != 2 || s.Sample[0].Year != "year1" || s.Sample[1].Year != "year2" {
		t.Errorf("Sample = %+v", s.Sample)
	}

	tests := []struct {
		name string
		got  []Average
		want []string
	}{
		{"year2", s.YearAverages, []string{"si1", "si2", "si3", "si4", "si5", "si6", "si7"}},
		{"ranked", s.Ranked, []string{"si2", "si1", "si3", "si4", "si7", "si6", "si5"}},
		{"top", s.Top, []string{"si2", "si1", "si3"}},
		{"bottom", s.Bottom, []string{"si5", "si6", "si7"}},
		{"above", s.AboveThreshold, []string{"si2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(tt.got); !sameStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if math.Abs(s.Top[0].Mean-80.645) > 1e-9 {
		t.Errorf("top mean = %v, want ~80.645", s.Top[0].Mean)
	}
	if !strings.Contains(s.Lineage, "sortBy") || !strings.Contains(s.Lineage, "parallelize") {
		t.Errorf("Lineage missing ancestors:\n%s", s.Lineage)
	}
}

func TestRunner_Run(t *testing.T) {
	var steps []string
	observe := func(scenario string, records int, _ time.Duration, err error) {
		if err != nil {
			t.Errorf("step %s failed: %v", scenario, err)
		}
		steps = append(steps, scenario)
	}
	report, err := newRunner(t, observe).Run(context.Background(), Scenarios)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Basics == nil || report.Temperatures == nil || report.Students == nil {
		t.Fatalf("incomplete report: %+v", report)
	}
	if !sameStrings(steps, Scenarios) {
		t.Errorf("observed %v, want %v", steps, Scenarios)
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Run("unknown scenario", func(t *testing.T) {
		_, err := newRunner(t, nil).Run(context.Background(), []string{"nope"})
		appErr, ok := errors.AsAppError(err)
		if !ok || appErr.Code != errors.ErrCodeInvalidArgument {
			t.Fatalf("error = %v, want INVALID_ARGUMENT", err)
		}
		if appErr.Details["scenario"] != "nope" {
			t.Errorf("details = %v", appErr.Details)
		}
	})
	t.Run("stopped context", func(t *testing.T) {
		r := newRunner(t, nil)
		r.sc.Stop()
		_, err := r.Run(context.Background(), []string{ScenarioBasics})
		if !errors.IsCode(err, errors.ErrCodeContextStopped) {
			t.Errorf("error = %v, want CONTEXT_STOPPED", err)
		}
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newRunner(t, nil).Run(ctx, []string{ScenarioTemperatures})
		if !errors.IsCode(err, errors.ErrCodeCanceled) {
			t.Errorf("error = %v, want CANCELED", err)
		}
	})
}

func TestRender(t *testing.T) {
	report, err := newRunner(t, nil).Run(context.Background(), Scenarios)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, report, FormatText); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"== basics ==", "== temperatures ==", "== students ==", "14.000000000000002", "80.645", "lineage:", "emptyRDD partitions"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q", want)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, report, FormatJSON); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		var decoded Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got := ids(decoded.Students.Top); !sameStrings(got, []string{"si2", "si1", "si3"}) {
			t.Errorf("decoded top = %v", got)
		}
		if decoded.Basics.Sum != 78 {
			t.Errorf("decoded sum = %d", decoded.Basics.Sum)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		err := Render(&bytes.Buffer{}, report, "xml")
		if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("error = %v, want INVALID_ARGUMENT", err)
		}
	})
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Name != "rddtutorial" || cfg.Engine.AppName != "rddtutorial" {
		t.Errorf("names = %q/%q", cfg.Name, cfg.Engine.AppName)
	}
	if *cfg.Dataset.MinCelsius != 13 || *cfg.Dataset.TopN != 3 || *cfg.Dataset.HonorsThreshold != 80 {
		t.Errorf("dataset thresholds = %v %v %v", *cfg.Dataset.MinCelsius, *cfg.Dataset.TopN, *cfg.Dataset.HonorsThreshold)
	}
	if !sameStrings(cfg.Scenarios, Scenarios) {
		t.Errorf("Scenarios = %v", cfg.Scenarios)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"bad scenario", func(c *Config) { c.Scenarios = []string{"basics", "nope"} }},
		{"bad master", func(c *Config) { c.Engine.Master = "yarn" }},
		{"bad threshold", func(c *Config) { c.Dataset.HonorsThreshold = ptr(120.0) }},
		{"negative top n", func(c *Config) { c.Dataset.TopN = ptr(-1) }},
		{"year without marks", func(c *Config) { c.Dataset.Year = "year3" }},
		{"bad marks row", func(c *Config) { c.Dataset.Marks = []Marks{{Year: "year1"}} }},
		{"bad environment", func(c *Config) { c.Environment = "qa" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_ZeroThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := "dataset:\n  min_celsius: 0\n  top_n: 0\n  honors_threshold: 0\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := config.LoadConfig("rddtutorial", &cfg, config.WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if *cfg.Dataset.MinCelsius != 0 || *cfg.Dataset.TopN != 0 || *cfg.Dataset.HonorsThreshold != 0 {
		t.Fatalf("explicit zeros replaced by defaults: %v %v %v",
			*cfg.Dataset.MinCelsius, *cfg.Dataset.TopN, *cfg.Dataset.HonorsThreshold)
	}

	sc, err := rdd.NewContext(cfg.Engine)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(sc, cfg.Dataset, nil, nil)

	temps, err := r.Temperatures(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(temps.AtLeast) != 7 {
		t.Errorf("AtLeast(0) kept %v, want all 7 readings", temps.AtLeast)
	}

	s, err := r.Students(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Top) != 0 || len(s.Bottom) != 0 {
		t.Errorf("top_n 0: top %v, bottom %v, want both empty", ids(s.Top), ids(s.Bottom))
	}
	if len(s.AboveThreshold) != 7 {
		t.Errorf("above 0 = %v, want all 7 students", ids(s.AboveThreshold))
	}
}

func TestRunner_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	sc, err := rdd.NewContext(rdd.Config{AppName: "tutorial-test"}, rdd.WithTracer(tp.Tracer("test")))
	if err != nil {
		t.Fatal(err)
	}
	var data Dataset
	data.ApplyDefaults()
	if _, err := NewRunner(sc, data, nil, nil).Run(context.Background(), []string{ScenarioTemperatures}); err != nil {
		t.Fatal(err)
	}

	spans := exporter.GetSpans()
	var scenario trace.SpanContext
	for _, s := range spans {
		if s.Name == "tutorial.temperatures" {
			scenario = s.SpanContext
		}
	}
	if !scenario.IsValid() {
		t.Fatalf("no scenario span among %d spans", len(spans))
	}
	stages := 0
	for _, s := range spans {
		if s.Name == "rdd.map" || s.Name == "rdd.filter" || s.Name == "rdd.parallelize" {
			stages++
			if s.Parent.SpanID() != scenario.SpanID() {
				t.Errorf("stage %s is not a child of the scenario span", s.Name)
			}
		}
	}
	if stages != 3 {
		t.Errorf("expected 3 stage spans, got %d", stages)
	}
}
