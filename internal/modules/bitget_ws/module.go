package bitget_ws

import (
	"context"

	"github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_ws/service"

	"go.uber.org/fx"
)

// Module поднимает публичный стрим тикеров Bitget.
func Module() fx.Option {
	return fx.Module("bitget_ws",
		fx.Provide(
			service.NewClient, // *service.Client
		),
		fx.Invoke(func(lc fx.Lifecycle, s *service.Client, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go s.Start(ctx)
					return nil
				},
			})
		}),
	)
}
