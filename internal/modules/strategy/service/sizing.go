package service

import (
	"math"

	"github.com/jamsturg/bitget-trading-bot/internal/helper"
)

// InvalidTradeParamsError — локальная ошибка валидации.
// Ловится ДО любого сетевого вызова: биржу дёргать с таким не имеет смысла.
type InvalidTradeParamsError struct {
	Reason string
}

func (e *InvalidTradeParamsError) Error() string {
	return "invalid trade parameters: " + e.Reason
}

// CalcPositionSize считает размер позиции в контрактах.
//
// risk — сколько USDT теряем при срабатывании стопа (с учётом плеча):
//
//	loss(USDT) ≈ size * |entry - stop| / leverage
//	=> size = risk * leverage / |entry - stop|
//
// Квантуем ВНИЗ по increment: размер никогда не превышает риск-бюджет.
func CalcPositionSize(entry, stop, risk float64, leverage int, increment float64) (float64, error) {
	if entry <= 0 || stop <= 0 {
		return 0, &InvalidTradeParamsError{Reason: "entry/stop <= 0"}
	}
	if risk <= 0 {
		return 0, &InvalidTradeParamsError{Reason: "risk <= 0"}
	}

	stopDist := math.Abs(entry - stop)
	if stopDist == 0 {
		// деление на ноль — а не бесконечный размер
		return 0, &InvalidTradeParamsError{Reason: "entry == stop"}
	}

	lev := float64(leverage)
	if lev <= 0 {
		lev = 1
	}

	raw := risk * lev / stopDist
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &InvalidTradeParamsError{Reason: "size not finite"}
	}

	if increment <= 0 {
		increment = 1
	}
	size := helper.QuantizeDown(raw, increment)
	if size <= 0 {
		return 0, &InvalidTradeParamsError{Reason: "size rounds down to zero"}
	}
	return size, nil
}

// validateLong проверяет инвариант лонга: stop < entry < target.
func validateLong(entry, target, stop float64) error {
	if !(stop < entry && entry < target) {
		return &InvalidTradeParamsError{Reason: "long invariant violated: need stop < entry < target"}
	}
	return nil
}
