package risk

import (
	bitget "github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_client/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/risk/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("risk",
		fx.Provide(
			service.NewManager, // *service.Manager
			func(c *bitget.Client) service.Gateway { return c },
		),
	)
}
