package service

import (
	"context"
	"math"
	"sort"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
)

// Gateway — что риск-менеджеру нужно от биржи.
type Gateway interface {
	Positions(ctx context.Context) ([]models.OpenPosition, error)
	USDTBalance(ctx context.Context) (float64, error)
}

// Manager фильтрует заявки по лимитам портфеля: максимум одновременных
// позиций и максимум суммарного риска как процент от депозита.
// Стратегия видит только уже отфильтрованный список.
type Manager struct {
	gw Gateway

	maxRiskPercent float64
	maxPositions   int
	riskPerTrade   float64
}

func NewManager(cfg *config.Config, gw Gateway) *Manager {
	return &Manager{
		gw:             gw,
		maxRiskPercent: cfg.Trading.MaxRiskPercent,
		maxPositions:   cfg.Trading.MaxPositions,
		riskPerTrade:   cfg.Trading.RiskPerTrade,
	}
}

// MaxRiskAmount — потолок риска в USDT от текущего депозита.
func (m *Manager) MaxRiskAmount(ctx context.Context) (float64, error) {
	balance, err := m.gw.USDTBalance(ctx)
	if err != nil {
		return 0, err
	}
	return balance * m.maxRiskPercent / 100.0, nil
}

// ActivePositions — сколько позиций сейчас реально открыто.
func (m *Manager) ActivePositions(ctx context.Context) (int, error) {
	positions, err := m.gw.Positions(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range positions {
		if p.Size > 0 {
			n++
		}
	}
	return n, nil
}

// CanOpen — влезает ли ещё одна позиция с таким риском.
func (m *Manager) CanOpen(ctx context.Context, riskAmount float64) (bool, error) {
	active, err := m.ActivePositions(ctx)
	if err != nil {
		return false, err
	}
	if active >= m.maxPositions {
		logger.Info("risk: maximum number of positions reached (%d)", active)
		return false, nil
	}

	maxRisk, err := m.MaxRiskAmount(ctx)
	if err != nil {
		return false, err
	}
	if riskAmount > maxRisk {
		logger.Info("risk: amount %.2f exceeds maximum allowed %.2f", riskAmount, maxRisk)
		return false, nil
	}
	return true, nil
}

var confidenceScores = map[string]int{
	"High":        3,
	"Medium-High": 2,
	"Medium":      1,
	"Low":         0,
}

// ApplyRiskFilters режет список заявок под свободные слоты и риск-бюджет.
// Более уверенные заявки идут первыми, порядок среди равных сохраняется.
func (m *Manager) ApplyRiskFilters(ctx context.Context, trades []models.TradeOpportunity) ([]models.TradeOpportunity, error) {
	active, err := m.ActivePositions(ctx)
	if err != nil {
		return nil, err
	}

	slots := m.maxPositions - active
	if slots <= 0 {
		logger.Info("risk: no available position slots, skipping all trades")
		return []models.TradeOpportunity{}, nil
	}

	maxRisk, err := m.MaxRiskAmount(ctx)
	if err != nil {
		return nil, err
	}

	sorted := append([]models.TradeOpportunity(nil), trades...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return confidenceScores[sorted[i].Confidence] > confidenceScores[sorted[j].Confidence]
	})

	filtered := make([]models.TradeOpportunity, 0, slots)
	totalRisk := 0.0
	for _, trade := range sorted {
		if trade.Entry <= 0 {
			continue
		}
		riskAmount := math.Abs(trade.Entry-trade.StopLoss) / trade.Entry * m.riskPerTrade

		if totalRisk+riskAmount <= maxRisk && len(filtered) < slots {
			filtered = append(filtered, trade)
			totalRisk += riskAmount
		} else {
			logger.Info("risk: skipping trade %s due to risk constraints", trade.Symbol)
		}
	}
	return filtered, nil
}
