package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jamsturg/bitget-trading-bot/internal/helper"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
)

// codeOK — сентинел успеха Bitget. Любой другой код — бизнес-ошибка,
// даже под HTTP 200. Отсутствие кода тоже считается успехом.
const codeOK = "00000"

type apiEnvelope struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// call выполняет один подписанный запрос. Один вызов — одна попытка:
// ни транспортные, ни API-ошибки здесь не ретраятся.
//
// Подпись строится по (ts, method, endpoint, body) — query в сообщение подписи
// НЕ входит, иначе биржа отвергнет подпись.
func (c *Client) call(ctx context.Context, method, endpoint string, query url.Values, body any) (json.RawMessage, error) {
	var bodyStr string
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyStr = string(payload)
	}

	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sign := c.sign(ts, method, endpoint, bodyStr)

	fullURL := c.baseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "bitget.request")
	defer span.Finish()
	span.SetTag("http.method", method)
	span.SetTag("bitget.endpoint", endpoint)

	var rd io.Reader
	if bodyStr != "" {
		rd = strings.NewReader(bodyStr)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, rd)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("ACCESS-KEY", c.apiKey)
	req.Header.Set("ACCESS-SIGN", sign)
	req.Header.Set("ACCESS-TIMESTAMP", ts)
	req.Header.Set("ACCESS-PASSPHRASE", c.passph)
	req.Header.Set("Content-Type", "application/json")

	if c.debug {
		logger.Info("bitget request: %s %s ts=%s key=%s passphrase=%s body=%s",
			method, fullURL, ts,
			helper.MaskTail(c.apiKey, 4), helper.MaskTail(c.passph, 3), bodyStr)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetTag("error", true)
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetTag("error", true)
		return nil, &TransportError{Cause: err}
	}
	span.SetTag("http.status_code", resp.StatusCode)

	if c.debug {
		logger.Info("bitget response: %s %s status=%d body=%s",
			method, endpoint, resp.StatusCode, helper.Truncate(string(data), 2000))
	}

	if resp.StatusCode != http.StatusOK {
		span.SetTag("error", true)
		return nil, &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	var env apiEnvelope
	if err := sonic.Unmarshal(data, &env); err == nil && env.Code != "" && env.Code != codeOK {
		span.SetTag("error", true)
		return nil, &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Msg, Body: string(data)}
	}

	return json.RawMessage(data), nil
}
