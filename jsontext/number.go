// Package jsontext tokenizes JSON text into values whose numbers are
// number.Number. Numbers follow the strict JSON grammar:
//
//	number  := "-"? intpart frac? exp?
//	intpart := "0" | nonzero digit*
//	frac    := "." digit+
//	exp     := ("e"|"E") ("+"|"-")? digit+
//
// Text is read one scalar value at a time from a Source backed either by
// UTF-16 code units or by a UTF-8 byte stream.
package jsontext

import (
	"math"
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/cbornum/decimal"
	"github.com/calebcase/cbornum/number"
)

// Error is the error class for this package.
var Error = errs.Class("jsontext")

// NumberOptions restricts or adjusts ParseNumber.
type NumberOptions struct {
	// IntegersOnly rejects fractions and exponents.
	IntegersOnly bool

	// PositiveOnly rejects a leading minus sign.
	PositiveOnly bool

	// PreserveNegativeZero keeps the sign of a negative zero by returning
	// a negative zero decimal. Otherwise negative zero parses as a
	// positive zero of the same scale.
	PreserveNegativeZero bool
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digits returns the end of the run of digits starting at i.
func digits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}

	return i
}

// ParseNumber parses text as a JSON number. It reports false when text does
// not match the grammar; the magnitude of a conforming number never causes
// a failure.
//
// Numbers without a fraction or exponent are integers. All others are
// decimals whose exponent is the stated exponent less the count of
// fraction digits.
func ParseNumber(text string, opts NumberOptions) (number.Number, bool) {
	i := 0

	negative := false
	if i < len(text) && text[i] == '-' {
		if opts.PositiveOnly {
			return number.Number{}, false
		}

		negative = true
		i++
	}

	if i >= len(text) || !isDigit(text[i]) {
		return number.Number{}, false
	}

	intStart := i
	if text[i] == '0' {
		i++
	} else {
		i = digits(text, i)
	}
	intPart := text[intStart:i]

	var fracPart string
	if i < len(text) && text[i] == '.' {
		if opts.IntegersOnly {
			return number.Number{}, false
		}

		i++
		fracStart := i
		i = digits(text, i)
		if i == fracStart {
			return number.Number{}, false
		}

		fracPart = text[fracStart:i]
	}

	var exp *big.Int
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		if opts.IntegersOnly {
			return number.Number{}, false
		}

		i++
		expNegative := false
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			expNegative = text[i] == '-'
			i++
		}

		expStart := i
		i = digits(text, i)
		if i == expStart {
			return number.Number{}, false
		}

		exp, _ = new(big.Int).SetString(text[expStart:i], 10)
		if expNegative {
			exp.Neg(exp)
		}
	}

	if i != len(text) {
		return number.Number{}, false
	}

	coeff, _ := new(big.Int).SetString(intPart+fracPart, 10)
	zero := coeff.Sign() == 0

	if fracPart == "" && exp == nil {
		if negative && zero && opts.PreserveNegativeZero {
			return number.FromDecimal(decimal.NewInt64(0, 0).Neg()), true
		}

		if negative {
			coeff.Neg(coeff)
		}

		return number.FromInteger(coeff), true
	}

	if exp == nil {
		exp = new(big.Int)
	}
	exp.Sub(exp, big.NewInt(int64(len(fracPart))))

	d := decimal.New(coeff, exp)
	if negative && (!zero || opts.PreserveNegativeZero) {
		d = d.Neg()
	}

	return number.FromDecimal(d), true
}

// ParseFloat64 parses text as a JSON number and returns the nearest float64,
// keeping the sign of negative zero. It returns NaN when text does not match
// the grammar.
func ParseFloat64(text string) float64 {
	n, ok := ParseNumber(text, NumberOptions{PreserveNegativeZero: true})
	if !ok {
		return math.NaN()
	}

	return n.Float64()
}
