package money

import (
	"github.com/govalues/decimal"
	"go.uber.org/zap/zapcore"
)

// Amount is a fixed-point dollar or percentage value scraped from the
// trading UI. Arithmetic panics on an error state, the caller must keep
// values inside the range the UI can render.
type Amount struct {
	v decimal.Decimal
}

var Zero = MustNew(0, 0)

func New(value int64, scale int) (Amount, error) {
	v, err := decimal.New(value, scale)
	if err != nil {
		return Amount{}, err
	}
	return Amount{v}, nil
}

func MustNew(value int64, scale int) Amount {
	return Amount{decimal.MustNew(value, scale)}
}

// FromCents converts integer cents to a dollar amount with two decimal
// places.
func FromCents(cents int64) Amount {
	return MustNew(cents, 2)
}

func (a Amount) Add(o Amount) Amount { return Amount{must(a.v.Add(o.v))} }
func (a Amount) Sub(o Amount) Amount { return Amount{must(a.v.Sub(o.v))} }
func (a Amount) Mul(o Amount) Amount { return Amount{must(a.v.Mul(o.v))} }
func (a Amount) Div(o Amount) Amount { return Amount{must(a.v.Quo(o.v))} }

func (a Amount) Abs() Amount { return Amount{a.v.Abs()} }
func (a Amount) Neg() Amount { return Amount{a.v.Neg()} }

func (a Amount) Eq(o Amount) bool  { return a.v.Cmp(o.v) == 0 }
func (a Amount) Gt(o Amount) bool  { return a.v.Cmp(o.v) > 0 }
func (a Amount) Lt(o Amount) bool  { return a.v.Cmp(o.v) < 0 }
func (a Amount) Gte(o Amount) bool { return a.v.Cmp(o.v) >= 0 }
func (a Amount) Lte(o Amount) bool { return a.v.Cmp(o.v) <= 0 }

func (a Amount) IsZero() bool             { return a.v.IsZero() }
func (a Amount) String() string           { return a.v.String() }
func (a Amount) Rescale(scale int) Amount { return Amount{a.v.Rescale(scale)} }

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a Amount) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("amount", a.String())
	return nil
}

func must(v decimal.Decimal, err error) decimal.Decimal {
	if err != nil {
		panic(err)
	}
	return v
}
