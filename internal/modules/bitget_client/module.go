package bitget_client

import (
	"github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_client/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bitget_client",
		fx.Provide(
			service.NewClient, // *service.Client
		),
	)
}
