package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Sign собирает подпись Bitget: base64(HMAC-SHA256(secret, ts+METHOD+path+body)).
// Конкатенация без разделителей, метод всегда в верхнем регистре, body —
// ровно те байты, что уйдут в запрос (пустая строка, если тела нет).
// Подпись покрывает только path, query-параметры в сообщение не входят.
func Sign(secret, timestamp, method, requestPath, body string) string {
	msg := timestamp + strings.ToUpper(method) + requestPath + body
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (c *Client) sign(ts, method, requestPath, body string) string {
	return Sign(c.apiSecret, ts, method, requestPath, body)
}
