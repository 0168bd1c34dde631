package models

import "encoding/json"

// TradeOpportunity — входная заявка на лонг-сделку. Список приходит извне
// (configs/trades.yaml), ядро его не генерирует и не изменяет.
// Инвариант лонга: StopLoss < Entry < Target.
type TradeOpportunity struct {
	Symbol        string  `yaml:"symbol" json:"symbol"`
	Entry         float64 `yaml:"entry" json:"entry"`
	Target        float64 `yaml:"target" json:"target"`
	StopLoss      float64 `yaml:"stop_loss" json:"stop_loss"`
	TickSize      float64 `yaml:"tick_size" json:"tick_size"`
	BaseIncrement float64 `yaml:"base_increment" json:"base_increment"`
	Confidence    string  `yaml:"confidence" json:"confidence"` // High | Medium-High | Medium | Low
}

// OpenPosition — открытая позиция с биржи. Только чтение: ядро никогда не
// правит позицию напрямую, только ставит встречные ордера.
type OpenPosition struct {
	Symbol       string
	Size         float64
	AvgOpenPrice float64
}

type ExecutionStatus string

const (
	StatusSuccess ExecutionStatus = "success"
	StatusError   ExecutionStatus = "error"
)

// Имена ног брекета в порядке выставления.
const (
	LegSetLeverage = "set-leverage"
	LegEntry       = "entry"
	LegPartialTP   = "partial-tp"
	LegFinalTP     = "final-tp"
	LegStopLoss    = "stop-loss"
)

// ExecutionResult — итог исполнения одной заявки: либо все четыре ордера,
// либо первая ошибка. Живёт только в рамках вызова, никуда не сохраняется.
type ExecutionResult struct {
	Symbol string
	Status ExecutionStatus

	EntryOrder     json.RawMessage
	PartialTPOrder json.RawMessage
	FinalTPOrder   json.RawMessage
	StopLossOrder  json.RawMessage

	Err error
}
