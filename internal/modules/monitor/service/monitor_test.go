package service

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	health "github.com/jamsturg/bitget-trading-bot/internal/modules/health/service"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type countingEvaluator struct {
	calls atomic.Int64
}

func (e *countingEvaluator) UpdateTrailingStops(context.Context) error {
	e.calls.Add(1)
	return nil
}

func TestMonitorTicks(t *testing.T) {
	eval := &countingEvaluator{}
	state := health.NewState()
	m := NewMonitor(eval, state, 10*time.Millisecond)

	m.StartMonitoring(context.Background())
	if !state.MonitorRunning() {
		t.Fatal("state must report a running monitor")
	}

	deadline := time.After(2 * time.Second)
	for eval.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("monitor made only %d evaluations", eval.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	m.StopMonitoring()
	if state.MonitorRunning() {
		t.Fatal("state must report a stopped monitor")
	}
	if state.LastEval().IsZero() {
		t.Fatal("last evaluation time must be recorded")
	}

	// после остановки тики не приходят
	after := eval.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if eval.calls.Load() != after {
		t.Fatal("evaluations continued after StopMonitoring")
	}
}

func TestMonitorStartIsIdempotent(t *testing.T) {
	eval := &countingEvaluator{}
	m := NewMonitor(eval, health.NewState(), time.Hour)

	m.StartMonitoring(context.Background())
	m.StartMonitoring(context.Background()) // no-op
	m.StopMonitoring()
}

func TestMonitorStopWithoutStart(t *testing.T) {
	m := NewMonitor(&countingEvaluator{}, health.NewState(), time.Minute)
	m.StopMonitoring() // не должен зависнуть или паниковать
}

func TestMonitorDefaultInterval(t *testing.T) {
	m := NewMonitor(&countingEvaluator{}, health.NewState(), 0)
	if m.interval != 60*time.Second {
		t.Fatalf("interval = %s, want 60s", m.interval)
	}
}
