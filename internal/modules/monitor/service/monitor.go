package service

import (
	"context"
	"sync"
	"time"

	health "github.com/jamsturg/bitget-trading-bot/internal/modules/health/service"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
)

// TrailingEvaluator — что монитор дёргает по тику.
type TrailingEvaluator interface {
	UpdateTrailingStops(ctx context.Context) error
}

// Monitor периодически запускает переоценку трейлинг-стопов.
// Один цикл — одна горутина: тики не накладываются друг на друга,
// дубль-ордера из-за гонки тиков исключены на этом уровне.
type Monitor struct {
	eval     TrailingEvaluator
	state    *health.State
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewMonitor(eval TrailingEvaluator, state *health.State, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Monitor{
		eval:     eval,
		state:    state,
		interval: interval,
	}
}

// StartMonitoring запускает цикл. Повторный старт — no-op.
func (m *Monitor) StartMonitoring(parent context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true
	m.state.SetMonitorRunning(true)

	go m.loop(ctx)
	logger.Info("monitoring started, interval=%s", m.interval)
}

// StopMonitoring останавливает цикл и дожидается выхода горутины.
func (m *Monitor) StopMonitoring() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel, done := m.cancel, m.done
	m.running = false
	m.mu.Unlock()

	cancel()
	<-done
	m.state.SetMonitorRunning(false)
	logger.Info("monitoring stopped")
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.eval.UpdateTrailingStops(ctx); err != nil {
				logger.Error("trailing evaluation: %v", err)
			}
			m.state.TouchEval(time.Now())
		}
	}
}
