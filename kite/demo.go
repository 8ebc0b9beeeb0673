package kite

import (
	"time"

	"github.com/etnz/goaltrack"
	"github.com/shopspring/decimal"
)

// demoHoldings is a small but plausible NSE portfolio for demo sessions.
func demoHoldings() []goaltrack.Holding {
	h := func(symbol string, qty, price float64) goaltrack.Holding {
		return goaltrack.Holding{
			Symbol:    symbol,
			Quantity:  decimal.NewFromFloat(qty),
			LastPrice: goaltrack.M(price, goaltrack.DefaultCurrency),
		}
	}
	return []goaltrack.Holding{
		h("INFY", 120, 1520.50),
		h("TCS", 40, 3890.00),
		h("RELIANCE", 60, 2950.75),
		h("HDFCBANK", 85, 1680.20),
		h("GOLDBEES", 500, 62.10),
		h("NIFTYBEES", 300, 245.80),
		h("ITC", 200, 435.60),
	}
}

// DemoGoals seeds the book with the demo goals when it is empty, so a
// demo session has something to allocate against.
func DemoGoals() []goaltrack.Goal {
	created := time.Now().UTC()
	return []goaltrack.Goal{
		{
			ID:           "demo_g1",
			Name:         "Dream Home",
			TargetAmount: goaltrack.M(5000000, goaltrack.DefaultCurrency),
			Deadline:     "2030-12-31",
			Color:        "#388bfd",
			CreatedAt:    created,
		},
		{
			ID:           "demo_g2",
			Name:         "New Car",
			TargetAmount: goaltrack.M(1500000, goaltrack.DefaultCurrency),
			Deadline:     "2026-06-30",
			Color:        "#2ea043",
			CreatedAt:    created,
		},
	}
}
