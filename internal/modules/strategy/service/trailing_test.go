package service

import (
	"context"
	"testing"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
)

// Позиция XUSDT по средней 100, цель 120 -> половина пути 110.

func TestTrailingMovesStopToBreakEven(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	gw.lastPx["XUSDT_UMCBL"] = 110 // ровно на пороге — срабатывает
	st, n, rec := newTestStrategy(gw, nil)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}

	stops := gw.stopOrders()
	if len(stops) != 1 {
		t.Fatalf("stop orders = %d, want 1", len(stops))
	}
	// безубыток: стоп на среднюю цену входа, на половину остатка
	if stops[0].price != "100" || stops[0].size != "3" || stops[0].side != "sell" {
		t.Fatalf("unexpected break-even stop: %+v", stops[0])
	}
	if len(rec.stopMoves) != 1 || rec.stopMoves[0] != "XUSDT_UMCBL" {
		t.Fatalf("stop move not recorded: %v", rec.stopMoves)
	}
	if len(n.msgs) == 0 {
		t.Fatal("no notification sent")
	}
}

func TestTrailingBelowThresholdDoesNothing(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	gw.lastPx["XUSDT_UMCBL"] = 109.99
	st, _, _ := newTestStrategy(gw, nil)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	if len(gw.stopOrders()) != 0 {
		t.Fatal("stop must not move below the half-target threshold")
	}
}

func TestTrailingHalfTargetUsesAvgOpenPrice(t *testing.T) {
	// позиция набралась по 104, а не по плановым 100: порог (104+120)/2 = 112
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 104}}
	gw.lastPx["XUSDT_UMCBL"] = 111
	st, _, _ := newTestStrategy(gw, nil)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	if len(gw.stopOrders()) != 0 {
		t.Fatal("threshold must be computed from averageOpenPrice, not planned entry")
	}

	gw.lastPx["XUSDT_UMCBL"] = 112
	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	stops := gw.stopOrders()
	if len(stops) != 1 || stops[0].price != "104" {
		t.Fatalf("break-even must sit at averageOpenPrice: %+v", stops)
	}
}

func TestTrailingDoesNotDuplicateStop(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	gw.lastPx["XUSDT_UMCBL"] = 115
	st, _, _ := newTestStrategy(gw, nil)

	for i := 0; i < 3; i++ {
		if err := st.UpdateTrailingStops(context.Background()); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if got := len(gw.stopOrders()); got != 1 {
		t.Fatalf("stop orders = %d, want 1 (no duplicates on repeated ticks)", got)
	}
}

func TestTrailingFlagResetsAfterPositionCloses(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	gw.lastPx["XUSDT_UMCBL"] = 115
	st, _, _ := newTestStrategy(gw, nil)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}

	// позиция закрылась, потом открылась заново — трейлим с нуля
	gw.positions = nil
	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("empty pass: %v", err)
	}

	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 4, AvgOpenPrice: 101}}
	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if got := len(gw.stopOrders()); got != 2 {
		t.Fatalf("stop orders = %d, want 2 (flag must reset after the position closes)", got)
	}
}

func TestTrailingSkipsUnknownSymbols(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{
		{Symbol: "UNKNOWNUSDT_UMCBL", Size: 5, AvgOpenPrice: 10},
		{Symbol: "XUSDT_UMCBL", Size: 0, AvgOpenPrice: 100}, // нулевой размер
	}
	st, _, _ := newTestStrategy(gw, nil)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	if len(gw.stopOrders()) != 0 {
		t.Fatal("unknown and empty positions must be skipped")
	}
}

func TestTrailingPrefersStreamPrice(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	// REST-цены нет вовсе: если стратегия пойдёт в REST, тест упадёт на ошибке
	prices := &fakePrices{px: map[string]float64{"XUSDT_UMCBL": 115}}
	st, _, _ := newTestStrategy(gw, prices)

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	if len(gw.stopOrders()) != 1 {
		t.Fatal("stream price must be used when fresh")
	}
}

func TestTrailingFallsBackToRESTPrice(t *testing.T) {
	gw := newFakeGateway()
	gw.positions = []models.OpenPosition{{Symbol: "XUSDT_UMCBL", Size: 6, AvgOpenPrice: 100}}
	gw.lastPx["XUSDT_UMCBL"] = 115
	// кэш пуст — протухший стрим
	st, _, _ := newTestStrategy(gw, &fakePrices{})

	if err := st.UpdateTrailingStops(context.Background()); err != nil {
		t.Fatalf("UpdateTrailingStops: %v", err)
	}
	if len(gw.stopOrders()) != 1 {
		t.Fatal("REST ticker must serve as a fallback")
	}
}
