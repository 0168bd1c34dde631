package service

import (
	"context"

	"github.com/jamsturg/bitget-trading-bot/internal/helper"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
)

// UpdateTrailingStops — один проход трейлинга, дёргается монитором по тику.
// Для каждой открытой позиции: если цена дошла до середины пути к цели,
// ставим новый стоп в безубыток (по средней цене входа) на половину остатка.
//
// Половина пути считается от averageOpenPrice, а не от плановой цены входа:
// позиция могла набраться частичными филлами по другим ценам.
//
// Повторный тик после срабатывания НЕ дублирует стоп: флаг adjusted держится
// в памяти до закрытия позиции.
func (s *Strategy) UpdateTrailingStops(ctx context.Context) error {
	s.trailMu.Lock()
	defer s.trailMu.Unlock()

	positions, err := s.gw.Positions(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(positions))
	for _, p := range positions {
		if p.Size <= 0 {
			continue
		}
		seen[p.Symbol] = true

		trade := s.findTrade(p.Symbol)
		if trade == nil {
			logger.Info("no trade configuration for %s, skipping", p.Symbol)
			continue
		}
		if s.adjusted[p.Symbol] {
			continue
		}

		entry := p.AvgOpenPrice
		if entry <= 0 {
			continue
		}
		halfTarget := entry + (trade.Target-entry)/2

		price, err := s.currentPrice(ctx, p.Symbol)
		if err != nil {
			logger.Error("price %s: %v", p.Symbol, err)
			continue
		}
		if price < halfTarget {
			continue
		}

		// безубыток: стоп на цену входа, на половину остатка
		newStop := entry
		halfSize := helper.QuantizeDown(p.Size/2, trade.BaseIncrement)
		if halfSize <= 0 {
			continue
		}
		sizeStr := helper.FormatSize(halfSize, trade.BaseIncrement)
		stopStr := helper.FormatPrice(newStop, trade.TickSize)

		if _, err := s.gw.PlaceStopOrder(ctx, p.Symbol, "sell", sizeStr, stopStr, ""); err != nil {
			logger.Error("move stop %s: %v", p.Symbol, err)
			continue
		}

		s.adjusted[p.Symbol] = true
		logger.Info("stop for %s moved to break-even @ %s", p.Symbol, stopStr)
		s.n.Sendf("🛡 %s: стоп переведён в безубыток @ %s (размер %s)", p.Symbol, stopStr, sizeStr)
		s.rec.RecordStopMove(ctx, p.Symbol, newStop, sizeStr)
	}

	// позиция закрылась — сбрасываем флаг, новая позиция трейлится заново
	for sym := range s.adjusted {
		if !seen[sym] {
			delete(s.adjusted, sym)
		}
	}
	return nil
}

// currentPrice: свежий тик из ws-кэша, иначе REST-тикер.
func (s *Strategy) currentPrice(ctx context.Context, symbol string) (float64, error) {
	if s.prices != nil {
		if px, ok := s.prices.LastPrice(symbol); ok {
			return px, nil
		}
	}
	return s.gw.MarketPrice(ctx, symbol)
}
