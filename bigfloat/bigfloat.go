// Package bigfloat provides an exact arbitrary-precision binary floating
// point number.
//
// The equation for a binary float is:
//
//	number = mantissa * 2 ^ exponent
//
// Both the mantissa and the exponent are unbounded integers. Values are
// immutable; every operation returns a new Float.
package bigfloat

import (
	"math"
	"math/big"
	"strings"

	"github.com/zeebo/errs"

	"github.com/calebcase/cbornum/internal/exact"
)

// Error is the error class for this package.
var Error = errs.Class("bigfloat")

// Form distinguishes finite values from infinities and NaN.
type Form uint8

// Forms
const (
	Finite Form = iota
	Infinite
	NaN
)

// Float is a binary floating point number. The zero value is +0.
type Float struct {
	form     Form
	negative bool
	mant     big.Int
	exp      big.Int
}

// New returns mantissa * 2^exponent.
func New(mantissa, exponent *big.Int) *Float {
	f := &Float{
		negative: mantissa.Sign() < 0,
	}
	f.mant.Abs(mantissa)
	f.exp.Set(exponent)

	return f
}

// NewInt64 returns mantissa * 2^exponent.
func NewInt64(mantissa, exponent int64) *Float {
	return New(big.NewInt(mantissa), big.NewInt(exponent))
}

// FromBigInt returns x as a Float with exponent zero.
func FromBigInt(x *big.Int) *Float {
	return New(x, new(big.Int))
}

// Inf returns an infinity with the given sign.
func Inf(negative bool) *Float {
	return &Float{form: Infinite, negative: negative}
}

// NewNaN returns a NaN.
func NewNaN() *Float {
	return &Float{form: NaN}
}

// FromFloat64 returns the exact value of x. Negative zero, infinities and NaN
// are preserved.
func FromFloat64(x float64) *Float {
	switch {
	case math.IsNaN(x):
		return NewNaN()
	case math.IsInf(x, 0):
		return Inf(x < 0)
	}

	bits := math.Float64bits(x)
	negative := bits>>63 != 0
	biased := int64(bits>>52) & 0x7ff
	frac := bits & (1<<52 - 1)

	var mant uint64
	var exp int64

	if biased == 0 {
		mant = frac
		exp = -1074
	} else {
		mant = frac | 1<<52
		exp = biased - 1075
	}

	f := &Float{negative: negative}
	if mant == 0 {
		return f
	}

	for mant&1 == 0 {
		mant >>= 1
		exp++
	}

	f.mant.SetUint64(mant)
	f.exp.SetInt64(exp)

	return f
}

// Form returns the form of f.
func (f *Float) Form() Form { return f.form }

// IsNaN reports whether f is NaN.
func (f *Float) IsNaN() bool { return f.form == NaN }

// IsInf reports whether f is an infinity.
func (f *Float) IsInf() bool { return f.form == Infinite }

// IsZero reports whether f is a finite zero of either sign.
func (f *Float) IsZero() bool { return f.form == Finite && f.mant.Sign() == 0 }

// Negative reports whether the sign bit of f is set. It is true for -0.
func (f *Float) Negative() bool { return f.negative }

// Sign returns -1, 0 or +1. The sign of NaN is 0; use IsNaN to tell it apart
// from zero.
func (f *Float) Sign() int {
	switch {
	case f.form == NaN:
		return 0
	case f.form == Finite && f.mant.Sign() == 0:
		return 0
	case f.negative:
		return -1
	}

	return 1
}

// Mantissa returns the signed mantissa.
func (f *Float) Mantissa() *big.Int {
	m := new(big.Int).Set(&f.mant)
	if f.negative {
		m.Neg(m)
	}

	return m
}

// Exponent returns the binary exponent.
func (f *Float) Exponent() *big.Int {
	return new(big.Int).Set(&f.exp)
}

// IsIntegral reports whether f is a finite integer.
func (f *Float) IsIntegral() bool {
	if f.form != Finite {
		return false
	}
	if f.mant.Sign() == 0 || f.exp.Sign() >= 0 {
		return true
	}

	shift := new(big.Int).Neg(&f.exp)

	return shift.IsInt64() && int64(f.mant.TrailingZeroBits()) >= shift.Int64()
}

// Neg returns -f. Negating zero yields a zero of the opposite sign.
func (f *Float) Neg() *Float {
	g := &Float{form: f.form, negative: !f.negative}
	if f.form == NaN {
		g.negative = f.negative
	}
	g.mant.Set(&f.mant)
	g.exp.Set(&f.exp)

	return g
}

// Add returns f + g.
func (f *Float) Add(g *Float) (*Float, error) {
	return add(f, g)
}

// Sub returns f - g.
func (f *Float) Sub(g *Float) (*Float, error) {
	return add(f, g.Neg())
}

func add(x, y *Float) (_ *Float, err error) {
	defer Error.WrapP(&err)

	switch {
	case x.form == NaN || y.form == NaN:
		return NewNaN(), nil
	case x.form == Infinite && y.form == Infinite:
		if x.negative != y.negative {
			return NewNaN(), nil
		}

		return Inf(x.negative), nil
	case x.form == Infinite:
		return Inf(x.negative), nil
	case y.form == Infinite:
		return Inf(y.negative), nil
	}

	exp := &x.exp
	if y.exp.Cmp(exp) < 0 {
		exp = &y.exp
	}

	mx, err := exact.Lsh(x.Mantissa(), new(big.Int).Sub(&x.exp, exp))
	if err != nil {
		return nil, err
	}

	my, err := exact.Lsh(y.Mantissa(), new(big.Int).Sub(&y.exp, exp))
	if err != nil {
		return nil, err
	}

	sum := New(mx.Add(mx, my), exp)
	if sum.mant.Sign() == 0 {
		sum.negative = x.negative && y.negative
	}

	return sum, nil
}

// Operand prepares f for exact comparison.
func (f *Float) Operand() exact.Operand {
	return exact.Operand{
		NaN:  f.form == NaN,
		Inf:  f.form == Infinite,
		Sign: f.Sign(),
		Mag: exact.Magnitude{
			Num:  &f.mant,
			Pow2: &f.exp,
		},
	}
}

// Cmp compares f and g numerically. NaN is greater than every other value
// and equal to NaN; -0 equals +0.
func (f *Float) Cmp(g *Float) int {
	return exact.Compare(f.Operand(), g.Operand())
}

// CmpRat compares f with the rational r without rounding either.
func CmpRat(f *Float, r *big.Rat) int {
	return exact.Compare(f.Operand(), exact.RatOperand(r))
}

// Rat returns the exact value of a finite f.
func (f *Float) Rat() (_ *big.Rat, err error) {
	defer Error.WrapP(&err)

	if f.form != Finite {
		return nil, Error.New("not finite: %s", f)
	}

	if f.exp.Sign() >= 0 {
		m, err := exact.Lsh(f.Mantissa(), &f.exp)
		if err != nil {
			return nil, err
		}

		return new(big.Rat).SetInt(m), nil
	}

	den, err := exact.Lsh(big.NewInt(1), new(big.Int).Neg(&f.exp))
	if err != nil {
		return nil, err
	}

	return new(big.Rat).SetFrac(f.Mantissa(), den), nil
}

// Float64 returns the nearest float64 to f.
func (f *Float) Float64() float64 {
	switch f.form {
	case NaN:
		return math.NaN()
	case Infinite:
		if f.negative {
			return math.Inf(-1)
		}

		return math.Inf(1)
	}

	if f.mant.Sign() == 0 {
		if f.negative {
			return math.Copysign(0, -1)
		}

		return 0
	}

	adjusted := new(big.Int).Add(&f.exp, big.NewInt(int64(f.mant.BitLen())))
	switch {
	case adjusted.Cmp(big.NewInt(1100)) > 0:
		return math.Copysign(math.Inf(1), float64(f.Sign()))
	case adjusted.Cmp(big.NewInt(-1100)) < 0:
		return math.Copysign(0, float64(f.Sign()))
	}

	m := new(big.Float).SetInt(f.Mantissa())
	v, _ := new(big.Float).SetMantExp(m, int(f.exp.Int64())).Float64()

	return v
}

// String formats f like strconv's 'b' format: -ddddp±ddd.
func (f *Float) String() string {
	var b strings.Builder

	if f.negative && f.form != NaN {
		b.WriteByte('-')
	}

	switch f.form {
	case NaN:
		return "NaN"
	case Infinite:
		b.WriteString("Infinity")

		return b.String()
	}

	b.WriteString(f.mant.Text(10))
	b.WriteByte('p')
	if f.exp.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(f.exp.Text(10))

	return b.String()
}

// Equal reports whether f and g have identical form, sign, mantissa and
// exponent.
func (f *Float) Equal(g *Float) bool {
	return f.form == g.form &&
		f.negative == g.negative &&
		f.mant.Cmp(&g.mant) == 0 &&
		f.exp.Cmp(&g.exp) == 0
}
