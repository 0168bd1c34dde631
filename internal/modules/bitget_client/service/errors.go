package service

import (
	"errors"
	"fmt"
)

// TransportError — сеть/таймаут. Ядро такие вызовы не ретраит,
// политика повторов — забота вызывающего.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bitget transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// APIError — биржа отвергла запрос. Бизнес-ошибки Bitget приходят и под
// HTTP 200 с кодом != "00000", поэтому Status и Code живут отдельно.
// Body — сырой ответ, чтобы диагностировать без повторного прогона.
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("bitget api error: code=%s msg=%s RAW=%s", e.Code, e.Message, e.Body)
	}
	return fmt.Sprintf("bitget api error: http %d: %s", e.Status, e.Body)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
