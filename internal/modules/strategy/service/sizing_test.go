package service

import (
	"errors"
	"math"
	"testing"
)

func TestCalcPositionSizeScenario(t *testing.T) {
	// риск 6 USDT, плечо 10, вход 100, стоп 90 -> дистанция 10 -> размер 6
	size, err := CalcPositionSize(100, 90, 6, 10, 1)
	if err != nil {
		t.Fatalf("CalcPositionSize: %v", err)
	}
	if size != 6 {
		t.Fatalf("size = %v, want 6", size)
	}
}

func TestCalcPositionSizeRiskBudgetProperty(t *testing.T) {
	// потеря по стопу size*|entry-stop|/leverage никогда не превышает риск
	cases := []struct {
		entry, stop, risk float64
		leverage          int
		increment         float64
	}{
		{100, 90, 6, 10, 1},
		{142.5, 138.2, 6, 10, 0.1},
		{3180, 3105, 25, 5, 0.01},
		{0.5, 0.43, 3, 20, 10},
		{26.4, 25.3, 6, 10, 0.1},
	}
	for _, c := range cases {
		size, err := CalcPositionSize(c.entry, c.stop, c.risk, c.leverage, c.increment)
		if err != nil {
			t.Fatalf("CalcPositionSize(%+v): %v", c, err)
		}
		loss := size * math.Abs(c.entry-c.stop) / float64(c.leverage)
		if loss > c.risk+1e-6 {
			t.Fatalf("case %+v: loss %v exceeds risk budget %v (size %v)", c, loss, c.risk, size)
		}
		// размер кратен шагу
		steps := size / c.increment
		if math.Abs(steps-math.Round(steps)) > 1e-6 {
			t.Fatalf("case %+v: size %v is not a multiple of increment %v", c, size, c.increment)
		}
	}
}

func TestCalcPositionSizeEntryEqualsStop(t *testing.T) {
	_, err := CalcPositionSize(100, 100, 6, 10, 1)
	var invalid *InvalidTradeParamsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTradeParamsError, got %v", err)
	}
}

func TestCalcPositionSizeInvalidInputs(t *testing.T) {
	cases := []struct {
		name              string
		entry, stop, risk float64
	}{
		{"zero entry", 0, 90, 6},
		{"negative stop", 100, -1, 6},
		{"zero risk", 100, 90, 0},
		{"negative risk", 100, 90, -5},
	}
	for _, c := range cases {
		_, err := CalcPositionSize(c.entry, c.stop, c.risk, 10, 1)
		var invalid *InvalidTradeParamsError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidTradeParamsError, got %v", c.name, err)
		}
	}
}

func TestCalcPositionSizeRoundsToZero(t *testing.T) {
	// шаг больше сырого размера — позиция не имеет смысла
	_, err := CalcPositionSize(100, 90, 0.1, 1, 1)
	var invalid *InvalidTradeParamsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTradeParamsError, got %v", err)
	}
}

func TestValidateLong(t *testing.T) {
	if err := validateLong(100, 120, 90); err != nil {
		t.Fatalf("valid long rejected: %v", err)
	}
	for _, c := range [][3]float64{
		{100, 90, 80},   // target ниже входа
		{100, 120, 110}, // stop выше входа
		{100, 100, 90},  // target == entry
		{100, 120, 100}, // stop == entry
	} {
		if err := validateLong(c[0], c[1], c[2]); err == nil {
			t.Fatalf("validateLong(%v) accepted invalid params", c)
		}
	}
}
