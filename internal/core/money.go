// Package core provides the domain types shared by ingestion and reporting.
//
// Amounts are kept as decimals in whole currency units. The source service
// stores plain JSON numbers, so converting to a fixed-point cents integer would
// either lose precision or assume a currency; decimal sums stay exact and
// independent of summation order.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every display amount.
const CurrencySymbol = "Rp"

// Money is a signed decimal amount.
type Money struct {
	Amount decimal.Decimal
}

var displayPrinter = message.NewPrinter(language.English)

// NewMoney returns an amount of whole units.
func NewMoney(units int64) Money {
	return Money{Amount: decimal.NewFromInt(units)}
}

// MoneyFromFloat converts a JSON number as returned by the remote API.
func MoneyFromFloat(f float64) Money {
	return Money{Amount: decimal.NewFromFloat(f)}
}

// ParseMoney parses a decimal string. It accepts an optional leading minus,
// an optional currency symbol and comma digit grouping:
//
//	ParseMoney("-50000")      -> -50000
//	ParseMoney("Rp1,230,000") -> 1230000
//	ParseMoney("-Rp12.5")     -> -12.5
func ParseMoney(s string) (Money, error) {
	orig := s
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, CurrencySymbol))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, orig)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, orig)
	}
	if neg {
		d = d.Neg()
	}
	return Money{Amount: d}, nil
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

func (m Money) Abs() Money {
	return Money{Amount: m.Amount.Abs()}
}

func (m Money) Cmp(o Money) int {
	return m.Amount.Cmp(o.Amount)
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String returns the plain decimal form, as written to CSV and SQLite.
func (m Money) String() string {
	return m.Amount.String()
}

// Display formats the amount for humans, rounded to whole units: "Rp1,230,000".
func (m Money) Display() string {
	units := m.Amount.Round(0)
	sign := ""
	if units.IsNegative() {
		sign = "-"
		units = units.Neg()
	}
	return sign + CurrencySymbol + displayPrinter.Sprintf("%d", units.IntPart())
}

// MarshalJSON emits the amount as a JSON number so chart code can plot it directly.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Amount.String()), nil
}
