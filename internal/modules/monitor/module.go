package monitor

import (
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	health "github.com/jamsturg/bitget-trading-bot/internal/modules/health/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/monitor/service"
	strategy "github.com/jamsturg/bitget-trading-bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("monitor",
		fx.Provide(
			func(cfg *config.Config, st *strategy.Strategy, state *health.State) *service.Monitor {
				return service.NewMonitor(st, state, cfg.Monitor.Interval)
			},
		),
	)
}
