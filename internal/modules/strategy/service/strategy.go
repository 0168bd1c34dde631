package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	"github.com/jamsturg/bitget-trading-bot/internal/notify"
)

// Gateway — то, что стратегии нужно от клиента биржи.
type Gateway interface {
	SetLeverage(ctx context.Context, symbol string, leverage int) (json.RawMessage, error)
	PlaceOrder(ctx context.Context, symbol, side, orderType, price, size string) (json.RawMessage, error)
	PlaceStopOrder(ctx context.Context, symbol, side, size, triggerPrice, executePrice string) (json.RawMessage, error)
	Positions(ctx context.Context) ([]models.OpenPosition, error)
	MarketPrice(ctx context.Context, symbol string) (float64, error)
}

// Recorder — журнал исполнений (реализует journal, либо noop).
type Recorder interface {
	RecordExecution(ctx context.Context, res models.ExecutionResult)
	RecordStopMove(ctx context.Context, symbol string, triggerPrice float64, size string)
}

// PriceSource — кэш последних цен из ws-стрима. Может вернуть ok=false,
// если цена протухла или стрим ещё не поднялся — тогда идём в REST.
type PriceSource interface {
	LastPrice(symbol string) (float64, bool)
}

type Strategy struct {
	gw     Gateway
	n      notify.Notifier
	rec    Recorder
	prices PriceSource

	risk     float64
	leverage int
	trades   []models.TradeOpportunity

	// trailing: один тик за раз + флаги "стоп уже переведён в БУ"
	trailMu  sync.Mutex
	adjusted map[string]bool
}

func NewStrategy(
	cfg *config.Config,
	gw Gateway,
	n notify.Notifier,
	rec Recorder,
	prices PriceSource,
) *Strategy {
	return &Strategy{
		gw:       gw,
		n:        n,
		rec:      rec,
		prices:   prices,
		risk:     cfg.Trading.RiskPerTrade,
		leverage: cfg.Trading.Leverage,
		trades:   cfg.Trades,
		adjusted: make(map[string]bool),
	}
}

// ExecuteAll гонит заявки строго последовательно, в порядке входа.
// Параллельное выставление ордеров по одному счёту рискует превысить
// задуманную экспозицию до подтверждения ранних ордеров.
// Ошибка одной сделки не прерывает остальные.
func (s *Strategy) ExecuteAll(ctx context.Context, trades []models.TradeOpportunity) []models.ExecutionResult {
	results := make([]models.ExecutionResult, 0, len(trades))
	for _, trade := range trades {
		results = append(results, s.ExecuteTrade(ctx, trade))
	}
	return results
}

func (s *Strategy) findTrade(symbol string) *models.TradeOpportunity {
	// линейный проход: список заявок маленький
	for i := range s.trades {
		if s.trades[i].Symbol == symbol {
			return &s.trades[i]
		}
	}
	return nil
}
