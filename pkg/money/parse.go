package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// The UI renders prices as "$1,234.56", percentage changes as "+0.28%",
// and sizes and volumes with thousands separators. Parsing strips the
// decoration and keeps the digits and sign.

var decoration = strings.NewReplacer("$", "", ",", "", "%", "", "(", "", ")", "")

// Parse converts a rendered dollar or percentage string to an Amount.
func Parse(s string) (Amount, error) {
	v, err := decimal.Parse(decoration.Replace(strings.TrimSpace(s)))
	if err != nil {
		return Amount{}, fmt.Errorf("unable to parse amount %q: %w", s, err)
	}
	return Amount{v}, nil
}

// ParseInt converts a rendered integer with thousands separators, such
// as a bid size or a daily volume, to an int64.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse integer %q: %w", s, err)
	}
	return n, nil
}

// Cents converts a rendered dollar string to integer cents. Digits past
// the second decimal place are truncated, never rounded up.
func Cents(s string) (int64, error) {
	a, err := Parse(s)
	if err != nil {
		return 0, err
	}
	whole, frac, ok := a.v.Trunc(2).Int64(2)
	if !ok {
		return 0, fmt.Errorf("amount %q does not fit in cents", s)
	}
	return whole*100 + frac, nil
}
