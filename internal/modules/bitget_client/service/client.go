package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
)

const marginCoin = "USDT"

// Client — авторизованный REST-клиент Bitget Futures (mix v1).
// Иммутабелен после создания: креды и базовый URL не меняются на лету,
// никакого глобального синглтона.
type Client struct {
	http    *http.Client
	baseURL string

	apiKey    string
	apiSecret string
	passph    string

	debug bool
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Bitget.BaseURL,
		apiKey:    strings.TrimSpace(cfg.Bitget.APIKey),
		apiSecret: strings.TrimSpace(cfg.Bitget.APISecret),
		passph:    strings.TrimSpace(cfg.Bitget.Passphrase),
		debug:     cfg.Debug,
	}
}
