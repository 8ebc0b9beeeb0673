package goaltrack

import (
	"bytes"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assumed for Money values whose currency
// was never set, typically values decoded from a backup document.
const DefaultCurrency = "INR"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Currency returns the money's currency, falling back to DefaultCurrency
// when unset.
func (m Money) Currency() string {
	if m.cur == "" {
		return DefaultCurrency
	}
	return m.cur
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := money.New(0, m.Currency()).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Mul(q decimal.Decimal) Money  { return Money{value: m.value.Mul(q), cur: m.cur} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// AsFloat returns the value as a float64, for display ratios only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// PercentOf returns which fraction of target this value covers, clamped to
// [0, 100]. target must be positive.
func (m Money) PercentOf(target Money) Percent {
	p := Percent(m.value.Div(target.value).InexactFloat64() * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MarshalJSON encodes the value as a plain JSON number, the currency is a
// property of the book, not of each amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted number. The currency is
// left weak, callers render it with DefaultCurrency.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	v, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("cannot parse money amount %q: %w", string(data), err)
	}
	m.value = v
	m.cur = ""
	return nil
}
