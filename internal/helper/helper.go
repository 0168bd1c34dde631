package helper

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantizeDown округляет ВНИЗ до ближайшего шага step.
// Вниз — чтобы размер позиции никогда не превышал риск-бюджет.
func QuantizeDown(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	steps := math.Floor(value/step + 1e-9)
	return steps * step
}

// QuantizeNearest округляет до ближайшего шага step (мидпоинт TP к тику).
func QuantizeNearest(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}

// FormatSize — размер как точная десятичная строка, квантованный вниз по шагу.
// Через decimal, чтобы в запрос не утекали артефакты float64 ("0.30000000000000004").
func FormatSize(value, step float64) string {
	return quantize(value, step, false)
}

// FormatPrice — цена как точная десятичная строка, квантованная к ближайшему тику.
func FormatPrice(value, tick float64) string {
	return quantize(value, tick, true)
}

func quantize(value, step float64, nearest bool) string {
	d := decimal.NewFromFloat(value)
	if step <= 0 {
		return d.String()
	}
	s := decimal.NewFromFloat(step)
	ratio := d.Div(s)
	if nearest {
		ratio = ratio.Round(0)
	} else {
		ratio = ratio.Floor()
	}
	return ratio.Mul(s).String()
}

// MaskTail оставляет первые visible символов, остальное — звёздочки.
// Секрет целиком в лог не попадает.
func MaskTail(s string, visible int) string {
	if s == "" {
		return ""
	}
	if visible >= len(s) {
		visible = len(s) / 2
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// Truncate обрезает длинные тела ответов в debug-логах.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// WsInstID: REST-символ "BTCUSDT_UMCBL" -> ws instId "BTCUSDT".
func WsInstID(symbol string) string {
	if i := strings.IndexByte(symbol, '_'); i > 0 {
		return symbol[:i]
	}
	return symbol
}
