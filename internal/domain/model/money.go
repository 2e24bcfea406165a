package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an exact amount in minor units (cents).
type Money int64

var ErrInvalidMoney = errors.New("invalid money")

// largest whole part that still fits with 99 cents
const maxUnits = (math.MaxInt64 - 99) / 100

// NewMoney builds an amount from whole units and cents.
func NewMoney(units int64, cents int64) Money {
	return Money(units*100 + cents)
}

// ParseMoney accepts "10", "10.5", "10.50" and "-3.25".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMoney
	}

	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, ErrInvalidMoney
	}
	if whole == "" {
		whole = "0"
	}
	if strings.ContainsAny(whole, "+-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	if units > maxUnits {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidMoney, s)
	}

	var cents int64
	if hasFrac {
		if frac == "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
			}
		}
		// third digit onwards rounds half up
		padded := frac + "00"
		cents, _ = strconv.ParseInt(padded[:2], 10, 64)
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}

	m := Money(units*100 + cents)
	if neg {
		m = -m
	}
	return m, nil
}

// Mul multiplies by an integer quantity.
func (m Money) Mul(qty int64) Money {
	return m * Money(qty)
}

// Percent returns m*p/100 rounded half up to the cent.
func (m Money) Percent(p int64) Money {
	v := int64(m) * p
	if v >= 0 {
		return Money((v + 50) / 100)
	}
	return Money((v - 50) / 100)
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	// exponent forms like 1e2 go through float parsing
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
		s = strconv.FormatFloat(f, 'f', 2, 64)
	}

	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
