// Package core provides the savings tracker domain model.
//
// This file contains the Amount type, its lenient JSON decoding and the
// parsing and formatting helpers used by the CLI.
package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// Amount is a value in the smallest currency unit (whole rupiah).
type Amount int64

var rupiah = money.NewFormatter(0, ",", ".", "Rp", "$ 1")

// Format renders the amount as "Rp 1.500.000".
func (a Amount) Format() string {
	return rupiah.Format(int64(a))
}

func (a Amount) String() string {
	return a.Format()
}

// Float returns the amount as a float64 for projection math.
func (a Amount) Float() float64 {
	return float64(a)
}

// AmountFromFloat rounds f to the nearest whole unit. Values outside the
// int64 range saturate at the nearest bound. NaN becomes zero.
func AmountFromFloat(f float64) Amount {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return Amount(math.Round(f))
}

// Millions scales a count of millions into an amount, as used by the
// target presets ("300" means Rp 300.000.000).
func Millions(n Amount) (Amount, error) {
	if n <= 0 || n > math.MaxInt64/1_000_000 {
		return 0, ErrInvalidAmount
	}
	return n * 1_000_000, nil
}

// UnmarshalJSON decodes numbers and numeric strings. Anything else,
// including null, decodes to zero so one corrupt record cannot poison a sum.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = AmountFromFloat(f)
	return nil
}

// ParseAmount parses user input such as "1500000", "1.500.000",
// "Rp 1,500,000" or "250000.50" into a positive whole amount.
//
// Dots and commas followed by exactly three digits are treated as thousand
// separators. A final separator followed by one or two digits is a decimal
// point and the fraction is rounded half-up.
//
// Examples:
//
//	ParseAmount("1.500.000") -> 1500000, nil
//	ParseAmount("1500,5")    -> 1501, nil
//	ParseAmount("0")         -> 0, ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(strings.ReplaceAll(s, ",", "."), ".")
	for _, p := range parts {
		if p == "" {
			return 0, ErrInvalidAmount
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, ErrInvalidAmount
			}
		}
	}

	intDigits := parts[0]
	fracPart := ""
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if len(last) != 3 {
			fracPart = last
			parts = parts[:len(parts)-1]
		}
		if len(fracPart) > 2 {
			return 0, ErrInvalidAmount
		}
		for _, group := range parts[1:] {
			if len(group) != 3 {
				return 0, ErrInvalidAmount
			}
		}
		intDigits = strings.Join(parts, "")
	}

	iv, err := strconv.ParseInt(intDigits, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Half-up rounding on the first fractional digit
	if fracPart != "" && fracPart[0] >= '5' {
		if iv == math.MaxInt64 {
			return 0, ErrInvalidAmount
		}
		iv++
	}
	if iv <= 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(iv), nil
}

// Sum adds up amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}
