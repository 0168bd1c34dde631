package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// PlaceOrder ставит обычный ордер (limit/market).
// price обязателен только для limit; размер и цена — уже готовые
// десятичные строки, клиент их не пересчитывает.
func (c *Client) PlaceOrder(ctx context.Context, symbol, side, orderType, price, size string) (json.RawMessage, error) {
	if size == "" {
		return nil, fmt.Errorf("PlaceOrder: empty size")
	}

	body := OrderRequest{
		Symbol:     symbol,
		MarginCoin: marginCoin,
		Side:       side,
		OrderType:  orderType,
		Size:       size,
	}
	if orderType == "limit" && price != "" {
		body.Price = price
	}

	return c.call(ctx, http.MethodPost, "/order/placeOrder", nil, body)
}

// SetLeverage выставляет плечо по символу.
func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) (json.RawMessage, error) {
	if leverage <= 0 {
		return nil, fmt.Errorf("SetLeverage: leverage <= 0")
	}

	body := LeverageRequest{
		Symbol:     symbol,
		MarginCoin: marginCoin,
		Leverage:   strconv.Itoa(leverage),
	}

	return c.call(ctx, http.MethodPost, "/account/setLeverage", nil, body)
}

// PlaceStopOrder ставит условный (plan) ордер: стоп-лосс или тейк-профит.
// executePrice == "" — market-исполнение по срабатыванию триггера.
func (c *Client) PlaceStopOrder(ctx context.Context, symbol, side, size, triggerPrice, executePrice string) (json.RawMessage, error) {
	if size == "" {
		return nil, fmt.Errorf("PlaceStopOrder: empty size")
	}
	if triggerPrice == "" {
		return nil, fmt.Errorf("PlaceStopOrder: empty triggerPrice")
	}

	body := PlanOrderRequest{
		Symbol:       symbol,
		MarginCoin:   marginCoin,
		Side:         side,
		Size:         size,
		TriggerPrice: triggerPrice,
		TriggerType:  "market_price",
		OrderType:    "market",
	}
	if executePrice != "" {
		body.OrderType = "limit"
		body.ExecutePrice = executePrice
	}

	return c.call(ctx, http.MethodPost, "/plan/placePlan", nil, body)
}
