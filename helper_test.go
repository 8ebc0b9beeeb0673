package goaltrack

import "github.com/shopspring/decimal"

// INR is a helper for tests to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// Q is a helper for tests to create a quantity from const
func Q(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// mustGoal is a helper for tests to build a goal with a fixed ID.
func mustGoal(id, name string, target Money) Goal {
	g, err := NewGoal(name, target, "", "")
	if err != nil {
		panic(err)
	}
	g.ID = id
	return g
}
