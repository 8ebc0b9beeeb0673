package goaltrack

import "github.com/shopspring/decimal"

// Holding is a position in the user's brokerage account. Holdings are
// supplied by the broker collaborator on each load and are read-only
// inputs here: the book never owns or persists them.
type Holding struct {
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	LastPrice Money           `json:"lastPrice"`
}

// MarketValue returns the current market value of the position.
func (h Holding) MarketValue() Money {
	return h.LastPrice.Mul(h.Quantity)
}
