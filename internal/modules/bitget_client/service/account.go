package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jamsturg/bitget-trading-bot/internal/models"

	"github.com/bytedance/sonic"
)

// Positions возвращает открытые позиции по USDT-марже.
func (c *Client) Positions(ctx context.Context) ([]models.OpenPosition, error) {
	q := url.Values{}
	q.Set("marginCoin", marginCoin)

	raw, err := c.call(ctx, http.MethodGet, "/position/allPosition", q, nil)
	if err != nil {
		return nil, err
	}

	var payload positionsResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("Positions decode: %w", err)
	}

	res := make([]models.OpenPosition, 0, len(payload.Data))
	for _, d := range payload.Data {
		total, _ := strconv.ParseFloat(d.Total, 64)
		avgPx, _ := strconv.ParseFloat(d.AverageOpenPrice, 64)
		res = append(res, models.OpenPosition{
			Symbol:       d.Symbol,
			Size:         total,
			AvgOpenPrice: avgPx,
		})
	}
	return res, nil
}

// MarketPrice — последняя цена по тикеру.
func (c *Client) MarketPrice(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	raw, err := c.call(ctx, http.MethodGet, "/market/ticker", q, nil)
	if err != nil {
		return 0, err
	}

	var payload tickerResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("MarketPrice decode: %w", err)
	}

	px, err := strconv.ParseFloat(payload.Data.Last, 64)
	if err != nil {
		return 0, fmt.Errorf("MarketPrice parse last %q: %w", payload.Data.Last, err)
	}
	return px, nil
}

// USDTBalance — доступный баланс USDT-аккаунта (umcbl).
func (c *Client) USDTBalance(ctx context.Context) (float64, error) {
	q := url.Values{}
	q.Set("productType", "umcbl")

	raw, err := c.call(ctx, http.MethodGet, "/account/accounts", q, nil)
	if err != nil {
		return 0, err
	}

	var payload accountsResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("USDTBalance decode: %w", err)
	}

	for _, acct := range payload.Data {
		if acct.MarginCoin == marginCoin {
			av, _ := strconv.ParseFloat(acct.Available, 64)
			return av, nil
		}
	}
	return 0, nil
}

// PendingOrders — висящие ордера, сырым payload-ом.
func (c *Client) PendingOrders(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, "/order/pending", nil, nil)
}

// TestAuth — простейший авторизованный вызов для проверки кредов на старте.
func (c *Client) TestAuth(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "/market/time", nil, nil)
	return err
}
