package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamsturg/bitget-trading-bot/internal/helper"
	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"
)

// PartialBracketError — выделенный исход: часть ног брекета встала,
// более поздняя нога упала. Уже выставленные ордера НЕ отменяются —
// на бирже остаётся частично захеджированное состояние, и вызывающему
// нужен точный список встал/не встал, чтобы разрулить экспозицию руками
// или компенсирующим шагом.
type PartialBracketError struct {
	Symbol string
	Placed []string // ноги-ордера, успевшие встать, в порядке выставления
	Failed string   // нога, на которой упали
	Err    error
}

func (e *PartialBracketError) Error() string {
	return fmt.Sprintf("partial bracket on %s: placed=[%s] failed=%s: %v",
		e.Symbol, strings.Join(e.Placed, ","), e.Failed, e.Err)
}

func (e *PartialBracketError) Unwrap() error { return e.Err }

// ExecuteTrade исполняет одну заявку как брекет из четырёх ордеров.
// Порядок фиксированный: плечо -> лимитный вход -> частичный TP на
// середине пути к цели (50% позиции) -> финальный TP на цели (50%) ->
// стоп-лосс на всю позицию.
func (s *Strategy) ExecuteTrade(ctx context.Context, trade models.TradeOpportunity) models.ExecutionResult {
	res := models.ExecutionResult{Symbol: trade.Symbol, Status: models.StatusError}

	if err := validateLong(trade.Entry, trade.Target, trade.StopLoss); err != nil {
		res.Err = err
		return res
	}

	size, err := CalcPositionSize(trade.Entry, trade.StopLoss, s.risk, s.leverage, trade.BaseIncrement)
	if err != nil {
		res.Err = err
		return res
	}

	// середина пути к цели, к ближайшему тику
	partialTP := helper.QuantizeNearest(trade.Entry+(trade.Target-trade.Entry)/2, trade.TickSize)
	halfSize := helper.QuantizeDown(size/2, trade.BaseIncrement)
	if halfSize <= 0 {
		res.Err = &InvalidTradeParamsError{Reason: "half size rounds down to zero"}
		return res
	}

	sizeStr := helper.FormatSize(size, trade.BaseIncrement)
	halfStr := helper.FormatSize(halfSize, trade.BaseIncrement)

	logger.Info("executing trade %s: entry=%.8g target=%.8g stop=%.8g size=%s",
		trade.Symbol, trade.Entry, trade.Target, trade.StopLoss, sizeStr)

	var placed []string
	fail := func(leg string, err error) models.ExecutionResult {
		if len(placed) == 0 {
			// ни одного ордера не встало — обычная ошибка, не partial
			res.Err = err
		} else {
			res.Err = &PartialBracketError{
				Symbol: trade.Symbol,
				Placed: append([]string(nil), placed...),
				Failed: leg,
				Err:    err,
			}
		}
		logger.Error("trade %s failed at %s: %v", trade.Symbol, leg, err)
		s.n.Sendf("❌ %s: брекет не доставлен, упали на %s: %v", trade.Symbol, leg, err)
		s.rec.RecordExecution(ctx, res)
		return res
	}

	if _, err := s.gw.SetLeverage(ctx, trade.Symbol, s.leverage); err != nil {
		return fail(models.LegSetLeverage, err)
	}

	entryResp, err := s.gw.PlaceOrder(ctx, trade.Symbol, "buy", "limit",
		helper.FormatPrice(trade.Entry, trade.TickSize), sizeStr)
	if err != nil {
		return fail(models.LegEntry, err)
	}
	res.EntryOrder = entryResp
	placed = append(placed, models.LegEntry)

	partialResp, err := s.gw.PlaceStopOrder(ctx, trade.Symbol, "sell", halfStr,
		helper.FormatPrice(partialTP, trade.TickSize), "")
	if err != nil {
		return fail(models.LegPartialTP, err)
	}
	res.PartialTPOrder = partialResp
	placed = append(placed, models.LegPartialTP)

	finalResp, err := s.gw.PlaceStopOrder(ctx, trade.Symbol, "sell", halfStr,
		helper.FormatPrice(trade.Target, trade.TickSize), "")
	if err != nil {
		return fail(models.LegFinalTP, err)
	}
	res.FinalTPOrder = finalResp
	placed = append(placed, models.LegFinalTP)

	slResp, err := s.gw.PlaceStopOrder(ctx, trade.Symbol, "sell", sizeStr,
		helper.FormatPrice(trade.StopLoss, trade.TickSize), "")
	if err != nil {
		return fail(models.LegStopLoss, err)
	}
	res.StopLossOrder = slResp

	res.Status = models.StatusSuccess
	logger.Info("trade %s: bracket placed, partial TP @ %s", trade.Symbol, helper.FormatPrice(partialTP, trade.TickSize))
	s.n.Sendf("✅ %s: брекет выставлен (вход %s, TP %s / %s, SL %s, размер %s)",
		trade.Symbol,
		helper.FormatPrice(trade.Entry, trade.TickSize),
		helper.FormatPrice(partialTP, trade.TickSize),
		helper.FormatPrice(trade.Target, trade.TickSize),
		helper.FormatPrice(trade.StopLoss, trade.TickSize),
		sizeStr)
	s.rec.RecordExecution(ctx, res)
	return res
}
