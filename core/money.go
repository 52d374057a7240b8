// Package core provides the value types shared by every ledger: the two
// fixed participants, calendar dates and rupee amounts.
//
// Amounts are kept as integer paise to avoid floating-point drift; use
// ParseAmount for user input and Half for settlement splits.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is a rupee amount in integer paise (hundredths).
type Money struct {
	Paise int64
}

// RupeesOf builds a Money from a whole-rupee count.
func RupeesOf(r int64) Money {
	return Money{Paise: r * 100}
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Both dot (12.34) and comma (12,34) separators are
// accepted. Signs, malformed input and non-positive results are rejected.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	// First two fractional digits are paise; half-up on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	paise := iv*100 + frac
	if paise <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Paise: paise}, nil
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Paise == 0
}

func (m Money) Add(o Money) Money {
	return Money{Paise: m.Paise + o.Paise}
}

func (m Money) Sub(o Money) Money {
	return Money{Paise: m.Paise - o.Paise}
}

func (m Money) Neg() Money {
	return Money{Paise: -m.Paise}
}

// Half returns one equal share of a two-way split, rounding half-up to the
// paisa. Half(200.00) is 100.00; Half(0.01) is 0.01.
func (m Money) Half() Money {
	half := decimal.New(m.Paise, 0).Div(decimal.NewFromInt(2)).Round(0)
	return Money{Paise: half.IntPart()}
}

// Rupees returns the amount as a float64 for display only. Calculations
// must stay in paise.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// Decimal returns the amount as an exact decimal in rupees.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Paise, -2)
}

// String renders the two-decimal rupee form, e.g. "120.00" or "-45.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes a plain JSON number in rupees, matching the persisted
// blob format; two-decimal values round-trip exactly.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		m.Paise = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, s)
	}
	m.Paise = d.Shift(2).Round(0).IntPart()
	return nil
}

var _ json.Marshaler = Money{}
