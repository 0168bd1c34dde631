package main

import (
	"context"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_client"
	bitgetsvc "github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_client/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/bitget_ws"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/health"
	healthsvc "github.com/jamsturg/bitget-trading-bot/internal/modules/health/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/journal"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/monitor"
	monsvc "github.com/jamsturg/bitget-trading-bot/internal/modules/monitor/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/risk"
	risksvc "github.com/jamsturg/bitget-trading-bot/internal/modules/risk/service"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/strategy"
	stsvc "github.com/jamsturg/bitget-trading-bot/internal/modules/strategy/service"
	"github.com/jamsturg/bitget-trading-bot/internal/notify"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
	"github.com/jamsturg/bitget-trading-bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	logger.SetServiceName("bitget-bot")
	tracing.SetServiceName("bitget-bot")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			// Notifier: если TELEGRAM_* нет — пишем в лог
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
		),
		config.Module(),
		fx.Invoke(initObservability),

		bitget_client.Module(),
		bitget_ws.Module(),
		journal.Module(),
		risk.Module(),
		strategy.Module(),
		monitor.Module(),
		health.Module(),

		fx.Invoke(runBot),
	)
	app.Run()
}

func initObservability(lc fx.Lifecycle, cfg *config.Config) error {
	if err := logger.Init(cfg.Debug); err != nil {
		return err
	}

	if cfg.Jaeger.Host != "" {
		_, closeTracer, err := tracing.InitTracer(tracing.Config{
			Host: cfg.Jaeger.Host,
			Port: cfg.Jaeger.Port,
		})
		if err != nil {
			return err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				closeTracer()
				return nil
			},
		})
	} else {
		tracing.NoopTracer()
	}
	return nil
}

func runBot(
	lc fx.Lifecycle,
	ctx context.Context,
	cfg *config.Config,
	client *bitgetsvc.Client,
	st *stsvc.Strategy,
	rm *risksvc.Manager,
	mon *monsvc.Monitor,
	state *healthsvc.State,
	n notify.Notifier,
) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go start(ctx, cfg, client, st, rm, mon, state, n)
			return nil
		},
		OnStop: func(_ context.Context) error {
			mon.StopMonitoring()
			return nil
		},
	})
}

func start(
	ctx context.Context,
	cfg *config.Config,
	client *bitgetsvc.Client,
	st *stsvc.Strategy,
	rm *risksvc.Manager,
	mon *monsvc.Monitor,
	state *healthsvc.State,
	n notify.Notifier,
) {
	// креды проверяем живым вызовом, прежде чем торговать
	if err := client.TestAuth(ctx); err != nil {
		logger.Error("authentication test failed: %v", err)
		return
	}
	logger.Info("authentication test successful")

	balance, err := client.USDTBalance(ctx)
	if err != nil {
		logger.Error("balance: %v", err)
		return
	}
	logger.Info("account balance: %.2f USDT", balance)

	filtered, err := rm.ApplyRiskFilters(ctx, cfg.Trades)
	if err != nil {
		logger.Error("risk filters: %v", err)
		return
	}

	if len(filtered) == 0 {
		logger.Info("no trades passed risk filters")
	} else {
		logger.Info("executing %d trades after risk filtering", len(filtered))
		results := st.ExecuteAll(ctx, filtered)

		ok := 0
		for _, r := range results {
			if r.Status == models.StatusSuccess {
				ok++
			}
		}
		logger.Info("batch done: %d/%d brackets placed", ok, len(results))
		n.Sendf("📊 Батч завершён: %d/%d брекетов выставлено", ok, len(results))
	}

	mon.StartMonitoring(ctx)
	state.SetReady(true)
}
