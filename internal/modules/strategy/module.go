package strategy

import (
	bitget "github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_client/service"
	ws "github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_ws/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/journal"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			service.NewStrategy, // *service.Strategy

			// Адаптеры конкретных сервисов под интерфейсы стратегии.
			func(c *bitget.Client) service.Gateway { return c },
			func(r journal.Recorder) service.Recorder { return r },
			func(w *ws.Client) service.PriceSource { return w },
		),
	)
}
