package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelVerbose, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarning, "WARN"},
		{LevelError, "ERROR"},
		{Level(2), "TRACE"},
		{Level(22), "FATAL"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelVerbose, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarning, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := NewSlogObserver(logger)
	obs.OnEvent(context.Background(), Event{
		Type:      "pipeline.run.start",
		Level:     LevelInfo,
		Timestamp: time.Now(),
		Source:    "pipeline.Run",
		Data:      map[string]any{"run_id": "abc"},
	})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["msg"] != "pipeline.run.start" {
		t.Errorf("msg = %v, want pipeline.run.start", record["msg"])
	}
	if record["source"] != "pipeline.Run" {
		t.Errorf("source = %v", record["source"])
	}
	if record["run_id"] != "abc" {
		t.Errorf("run_id = %v", record["run_id"])
	}
}

type recordingObserver struct {
	events []Event
}

func (r *recordingObserver) OnEvent(ctx context.Context, event Event) {
	r.events = append(r.events, event)
}

func TestMultiObserverFanOut(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}

	multi := NewMultiObserver(first, nil, second)
	multi.OnEvent(context.Background(), Event{Type: "stage.complete", Level: LevelVerbose})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Errorf("fan-out delivered %d/%d events, want 1/1", len(first.events), len(second.events))
	}
}

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("NewPrometheusObserver failed: %v", err)
	}

	obs.OnEvent(context.Background(), Event{Type: "pipeline.run.start", Level: LevelInfo})
	obs.OnEvent(context.Background(), Event{Type: "pipeline.run.start", Level: LevelInfo})
	obs.OnEvent(context.Background(), Event{Type: "pipeline.stage.recovered", Level: LevelWarning})

	runStarts := obs.events.WithLabelValues("pipeline.run.start", "INFO")
	if got := testutil.ToFloat64(runStarts); got != 2 {
		t.Errorf("run.start count = %v, want 2", got)
	}
	recovered := obs.events.WithLabelValues("pipeline.stage.recovered", "WARN")
	if got := testutil.ToFloat64(recovered); got != 1 {
		t.Errorf("stage.recovered count = %v, want 1", got)
	}

	// Double registration against the same registry must fail.
	if _, err := NewPrometheusObserver(reg); err == nil {
		t.Error("second registration on the same registry succeeded")
	}
}

func TestObserverRegistry(t *testing.T) {
	if _, err := GetObserver("noop"); err != nil {
		t.Errorf("GetObserver(noop) failed: %v", err)
	}
	if _, err := GetObserver("slog"); err != nil {
		t.Errorf("GetObserver(slog) failed: %v", err)
	}
	if _, err := GetObserver("nope"); err == nil {
		t.Error("GetObserver succeeded for an unregistered name")
	}

	custom := &recordingObserver{}
	RegisterObserver("recording", custom)
	got, err := GetObserver("recording")
	if err != nil {
		t.Fatalf("GetObserver(recording) failed: %v", err)
	}
	if got != Observer(custom) {
		t.Error("registry returned a different observer")
	}
}
