package journal

import (
	"context"
	"fmt"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/journal/service"
	"github.com/jamsturg/bitget-trading-bot/pkg/db"

	"go.uber.org/fx"
)

// Recorder — журнал исполнений. Write-only для бота.
type Recorder interface {
	RecordExecution(ctx context.Context, res models.ExecutionResult)
	RecordStopMove(ctx context.Context, symbol string, triggerPrice float64, size string)
}

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (Recorder, error) {
				if cfg.DB == "" {
					return service.NewNoop(), nil
				}

				pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, fmt.Errorf("failed to create journal pool: %w", err)
				}
				if err := pool.Ping(ctx); err != nil {
					return nil, err
				}

				j := service.NewJournal(db.NewPgTxManager(pool))
				if err := j.EnsureSchema(ctx); err != nil {
					return nil, err
				}
				return j, nil
			},
		),
	)
}
