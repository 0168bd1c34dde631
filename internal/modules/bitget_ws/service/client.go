package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jamsturg/bitget-trading-bot/internal/helper"
	"github.com/jamsturg/bitget-trading-bot/internal/modules/config"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// staleAfter: старше этого — цена считается протухшей, идём в REST.
const staleAfter = 10 * time.Second

// Client — публичный ws-стрим тикеров Bitget. Держит кэш последних цен
// по символам из файла заявок; авторизация не нужна, канал публичный.
type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer

	mu     sync.RWMutex
	prices map[string]float64
	at     map[string]time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{},
		prices:   make(map[string]float64),
		at:       make(map[string]time.Time),
	}
}

// LastPrice — последняя цена по REST-символу ("BTCUSDT_UMCBL").
// ok=false, если тика ещё не было или цена протухла.
func (c *Client) LastPrice(symbol string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	inst := helper.WsInstID(symbol)
	px, ok := c.prices[inst]
	if !ok || time.Since(c.at[inst]) > staleAfter {
		return 0, false
	}
	return px, true
}

func (c *Client) setPrice(instID string, px float64) {
	c.mu.Lock()
	c.prices[instID] = px
	c.at[instID] = time.Now()
	c.mu.Unlock()
}

type subArg struct {
	InstType string `json:"instType"`
	Channel  string `json:"channel"`
	InstID   string `json:"instId"`
}

type wsFrame struct {
	Event string `json:"event"`
	Arg   subArg `json:"arg"`
	Data  []struct {
		Last string `json:"last"`
	} `json:"data"`
}

// Start крутит подключение с реконнектом, пока жив контекст.
func (c *Client) Start(ctx context.Context) {
	symbols := make([]string, 0, len(c.cfg.Trades))
	for _, t := range c.cfg.Trades {
		symbols = append(symbols, helper.WsInstID(t.Symbol))
	}
	if len(symbols) == 0 {
		logger.Info("ws: no symbols to stream")
		return
	}

	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.Dial(c.cfg.Bitget.WsURL, nil)
		if err != nil {
			retry++
			logger.Error("ws dial (%d): %v", retry, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff(retry)):
			}
			continue
		}
		retry = 0

		args := make([]subArg, 0, len(symbols))
		for _, s := range symbols {
			args = append(args, subArg{InstType: "mc", Channel: "ticker", InstID: s})
		}
		_ = conn.WriteJSON(map[string]any{"op": "subscribe", "args": args})

		stopPing := make(chan struct{})
		go func() {
			t := time.NewTicker(25 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-stopPing:
					return
				case <-ctx.Done():
					return
				case <-t.C:
					_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
				}
			}
		}()

		c.readLoop(ctx, conn)
		close(stopPing)
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}
	}
}

func backoff(retry int) time.Duration {
	if retry > 8 {
		retry = 8
	}
	return time.Duration(300*retry) * time.Millisecond
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Error("ws read: %v", err)
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg []byte) {
	if string(msg) == "pong" {
		return
	}

	var frame wsFrame
	if err := sonic.Unmarshal(msg, &frame); err != nil {
		return
	}
	if frame.Arg.Channel != "ticker" || len(frame.Data) == 0 {
		return
	}
	// в пачке может быть несколько тиков, актуален последний
	if px, err := strconv.ParseFloat(frame.Data[len(frame.Data)-1].Last, 64); err == nil && px > 0 {
		c.setPrice(frame.Arg.InstID, px)
	}
}
