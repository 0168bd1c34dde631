package service

// Запросы к бирже — явные типизированные тела, а не map[string]any:
// состав полей фиксирован контрактом Bitget, опечатка в ключе ловится компилятором.

type OrderRequest struct {
	Symbol     string `json:"symbol"`
	MarginCoin string `json:"marginCoin"`
	Side       string `json:"side"`      // buy | sell
	OrderType  string `json:"orderType"` // limit | market
	Size       string `json:"size"`
	Price      string `json:"price,omitempty"`
}

type PlanOrderRequest struct {
	Symbol       string `json:"symbol"`
	MarginCoin   string `json:"marginCoin"`
	Side         string `json:"side"`
	Size         string `json:"size"`
	TriggerPrice string `json:"triggerPrice"`
	TriggerType  string `json:"triggerType"` // всегда market_price
	OrderType    string `json:"orderType"`
	ExecutePrice string `json:"executePrice,omitempty"`
}

type LeverageRequest struct {
	Symbol     string `json:"symbol"`
	MarginCoin string `json:"marginCoin"`
	Leverage   string `json:"leverage"`
}

// Ответы. Непромапленные поля остаются в сыром json.RawMessage из call.

type tickerResponse struct {
	Code string `json:"code"`
	Data struct {
		Last string `json:"last"`
	} `json:"data"`
}

type positionsResponse struct {
	Code string `json:"code"`
	Data []struct {
		Symbol           string `json:"symbol"`
		Total            string `json:"total"`
		AverageOpenPrice string `json:"averageOpenPrice"`
	} `json:"data"`
}

type accountsResponse struct {
	Code string `json:"code"`
	Data []struct {
		MarginCoin string `json:"marginCoin"`
		Available  string `json:"available"`
	} `json:"data"`
}
