// Package number provides Number, a single immutable value type over the six
// numeric representations produced by the CBOR and JSON decoders.
//
// A Number is one of:
//
//	FixedInteger   int64
//	BigInteger     *big.Int
//	BinaryDouble   float64
//	BigDecimal     *decimal.Decimal
//	BigBinaryFloat *bigfloat.Float
//	BigRational    *big.Rat
//
// Arithmetic across kinds promotes both operands to the widest kind involved
// and never rounds. Compare is a total order in which NaN sorts above every
// other value.
package number

import (
	"math"
	"math/big"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"

	"github.com/calebcase/cbornum/bigfloat"
	"github.com/calebcase/cbornum/decimal"
	"github.com/calebcase/cbornum/internal/exact"
)

// Error is the error class for this package.
var Error = errs.Class("number")

var (
	// ErrNotFinite is returned when NaN or an infinity must be converted to
	// a kind that cannot hold it.
	ErrNotFinite = Error.New("value is not finite")

	// ErrInexact is returned when a conversion would have to round.
	ErrInexact = Error.New("value is not exactly representable")

	// ErrDenominator is returned for a rational whose denominator is not
	// positive.
	ErrDenominator = Error.New("denominator must be positive")
)

// Number is an immutable numeric value. The zero value is FixedInteger 0.
type Number struct {
	kind Kind

	i  int64
	f  float64
	bi *big.Int
	d  *decimal.Decimal
	bf *bigfloat.Float
	r  *big.Rat
}

// FromInt64 returns a FixedInteger.
func FromInt64(i int64) Number {
	return Number{kind: FixedInteger, i: i}
}

// FromBigInt returns a BigInteger holding a copy of x.
func FromBigInt(x *big.Int) Number {
	return Number{kind: BigInteger, bi: new(big.Int).Set(x)}
}

// FromInteger returns a FixedInteger when x fits in an int64 and a
// BigInteger otherwise.
func FromInteger(x *big.Int) Number {
	if x.IsInt64() {
		return FromInt64(x.Int64())
	}

	return FromBigInt(x)
}

// FromFloat64 returns a BinaryDouble.
func FromFloat64(f float64) Number {
	return Number{kind: BinaryDouble, f: f}
}

// FromDecimal returns a BigDecimal.
func FromDecimal(d *decimal.Decimal) Number {
	return Number{kind: BigDecimal, d: d}
}

// FromBinaryFloat returns a BigBinaryFloat.
func FromBinaryFloat(f *bigfloat.Float) Number {
	return Number{kind: BigBinaryFloat, bf: f}
}

// FromRat returns a BigRational holding a copy of r.
func FromRat(r *big.Rat) Number {
	return Number{kind: BigRational, r: new(big.Rat).Set(r)}
}

// NewRat returns num/den as a BigRational. The denominator must be positive.
func NewRat(num, den *big.Int) (_ Number, err error) {
	defer Error.WrapP(&err)

	if den.Sign() <= 0 {
		return Number{}, oops.Trace(ErrDenominator)
	}

	return Number{kind: BigRational, r: new(big.Rat).SetFrac(num, den)}, nil
}

// Kind returns the representation held by n.
func (n Number) Kind() Kind { return n.kind }

// Sign returns the sign of n, or NotANumber.
func (n Number) Sign() Sign {
	switch n.kind {
	case FixedInteger:
		switch {
		case n.i < 0:
			return Negative
		case n.i > 0:
			return Positive
		}

		return Zero
	case BigInteger:
		return Sign(n.bi.Sign())
	case BinaryDouble:
		switch {
		case math.IsNaN(n.f):
			return NotANumber
		case n.f < 0:
			return Negative
		case n.f > 0:
			return Positive
		}

		return Zero
	case BigDecimal:
		if n.d.IsNaN() {
			return NotANumber
		}

		return Sign(n.d.Sign())
	case BigBinaryFloat:
		if n.bf.IsNaN() {
			return NotANumber
		}

		return Sign(n.bf.Sign())
	case BigRational:
		return Sign(n.r.Sign())
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// IsNaN reports whether n is not a number.
func (n Number) IsNaN() bool {
	return n.Sign() == NotANumber
}

// IsInfinity reports whether n is positive or negative infinity.
func (n Number) IsInfinity() bool {
	switch n.kind {
	case BinaryDouble:
		return math.IsInf(n.f, 0)
	case BigDecimal:
		return n.d.IsInf()
	case BigBinaryFloat:
		return n.bf.IsInf()
	}

	return false
}

// IsNegative reports whether the sign bit of n is set, including -0.
func (n Number) IsNegative() bool {
	switch n.kind {
	case BinaryDouble:
		return !math.IsNaN(n.f) && math.Signbit(n.f)
	case BigDecimal:
		return !n.d.IsNaN() && n.d.Negative()
	case BigBinaryFloat:
		return !n.bf.IsNaN() && n.bf.Negative()
	}

	return n.Sign() == Negative
}

// IsIntegral reports whether n is a finite integer.
func (n Number) IsIntegral() bool {
	switch n.kind {
	case FixedInteger, BigInteger:
		return true
	case BinaryDouble:
		return !math.IsInf(n.f, 0) && n.f == math.Trunc(n.f)
	case BigDecimal:
		return n.d.IsIntegral()
	case BigBinaryFloat:
		return n.bf.IsIntegral()
	case BigRational:
		return n.r.IsInt()
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// Int64 returns n as an int64 if it is an integer in range.
func (n Number) Int64() (int64, bool) {
	if n.kind == FixedInteger {
		return n.i, true
	}

	x, ok := n.BigInt()
	if !ok || !x.IsInt64() {
		return 0, false
	}

	return x.Int64(), true
}

// BigInt returns n as a big.Int if it is a finite integer.
func (n Number) BigInt() (*big.Int, bool) {
	switch n.kind {
	case FixedInteger:
		return big.NewInt(n.i), true
	case BigInteger:
		return new(big.Int).Set(n.bi), true
	}

	if !n.IsIntegral() {
		return nil, false
	}

	r, err := n.Rat()
	if err != nil {
		return nil, false
	}

	return new(big.Int).Set(r.Num()), true
}

// Float64 returns the float64 nearest to n.
func (n Number) Float64() float64 {
	switch n.kind {
	case FixedInteger:
		return float64(n.i)
	case BigInteger:
		f, _ := new(big.Float).SetInt(n.bi).Float64()

		return f
	case BinaryDouble:
		return n.f
	case BigDecimal:
		return n.d.Float64()
	case BigBinaryFloat:
		return n.bf.Float64()
	case BigRational:
		f, _ := n.r.Float64()

		return f
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// Rat returns the exact value of n as a rational.
func (n Number) Rat() (_ *big.Rat, err error) {
	defer Error.WrapP(&err)

	switch n.kind {
	case FixedInteger:
		return new(big.Rat).SetInt64(n.i), nil
	case BigInteger:
		return new(big.Rat).SetInt(n.bi), nil
	case BinaryDouble:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return nil, oops.Trace(ErrNotFinite)
		}

		return new(big.Rat).SetFloat64(n.f), nil
	case BigDecimal:
		if n.d.Form() != decimal.Finite {
			return nil, oops.Trace(ErrNotFinite)
		}

		return n.d.Rat()
	case BigBinaryFloat:
		if n.bf.Form() != bigfloat.Finite {
			return nil, oops.Trace(ErrNotFinite)
		}

		return n.bf.Rat()
	case BigRational:
		return new(big.Rat).Set(n.r), nil
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// Decimal returns the exact value of n as a decimal. A rational converts only
// when its denominator has no prime factors other than 2 and 5.
func (n Number) Decimal() (_ *decimal.Decimal, err error) {
	defer Error.WrapP(&err)

	switch n.kind {
	case FixedInteger:
		return decimal.NewInt64(n.i, 0), nil
	case BigInteger:
		return decimal.FromBigInt(n.bi), nil
	case BinaryDouble:
		return decimal.FromBinary(bigfloat.FromFloat64(n.f))
	case BigDecimal:
		return n.d, nil
	case BigBinaryFloat:
		return decimal.FromBinary(n.bf)
	case BigRational:
		return ratDecimal(n.r)
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// BinaryFloat returns the exact value of n as a binary float. Decimals and
// rationals convert only when their denominator is a power of two.
func (n Number) BinaryFloat() (_ *bigfloat.Float, err error) {
	defer Error.WrapP(&err)

	switch n.kind {
	case FixedInteger:
		return bigfloat.NewInt64(n.i, 0), nil
	case BigInteger:
		return bigfloat.FromBigInt(n.bi), nil
	case BinaryDouble:
		return bigfloat.FromFloat64(n.f), nil
	case BigDecimal:
		return decimalBinary(n.d)
	case BigBinaryFloat:
		return n.bf, nil
	case BigRational:
		return ratBinary(n.r)
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// Equal reports whether a and b have the same kind and identical payloads.
// It is not numeric equality: FixedInteger 1 and BinaryDouble 1 differ, as do
// decimals 1.0 and 1.00.
func Equal(a, b Number) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case FixedInteger:
		return a.i == b.i
	case BigInteger:
		return a.bi.Cmp(b.bi) == 0
	case BinaryDouble:
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case BigDecimal:
		return a.d.Equal(b.d)
	case BigBinaryFloat:
		return a.bf.Equal(b.bf)
	case BigRational:
		return a.r.Cmp(b.r) == 0
	}

	panic(Error.New("unknown kind: %s", a.kind))
}

// Equal reports whether n and m have the same kind and identical payloads.
func (n Number) Equal(m Number) bool {
	return Equal(n, m)
}

// factor removes every factor p from x and returns the count removed.
func factor(x *big.Int, p int64) int64 {
	bp := big.NewInt(p)
	q, r := new(big.Int), new(big.Int)

	var count int64
	for x.Sign() != 0 {
		q.QuoRem(x, bp, r)
		if r.Sign() != 0 {
			break
		}

		x.Set(q)
		count++
	}

	return count
}

func ratDecimal(r *big.Rat) (*decimal.Decimal, error) {
	den := new(big.Int).Set(r.Denom())
	twos := factor(den, 2)
	fives := factor(den, 5)
	if den.Cmp(big.NewInt(1)) != 0 {
		return nil, oops.Trace(ErrInexact)
	}

	k := twos
	if fives > k {
		k = fives
	}

	coeff := new(big.Int).Set(r.Num())
	coeff.Lsh(coeff, uint(k-twos))
	coeff.Mul(coeff, new(big.Int).Exp(big.NewInt(5), big.NewInt(k-fives), nil))

	return decimal.New(coeff, big.NewInt(-k)), nil
}

func ratBinary(r *big.Rat) (*bigfloat.Float, error) {
	den := r.Denom()
	shift := den.TrailingZeroBits()
	if den.BitLen() != int(shift)+1 {
		return nil, oops.Trace(ErrInexact)
	}

	return bigfloat.New(r.Num(), big.NewInt(-int64(shift))), nil
}

func decimalBinary(d *decimal.Decimal) (*bigfloat.Float, error) {
	switch d.Form() {
	case decimal.NaN:
		return bigfloat.NewNaN(), nil
	case decimal.Infinite:
		return bigfloat.Inf(d.Negative()), nil
	}

	exp := d.Exponent()
	coeff := d.Coefficient()

	var f *bigfloat.Float
	switch {
	case coeff.Sign() == 0:
		f = bigfloat.NewInt64(0, 0)
	case exp.Sign() >= 0:
		p, err := exact.Pow10(exp)
		if err != nil {
			return nil, err
		}

		f = bigfloat.FromBigInt(coeff.Mul(coeff, p))
	default:
		places := new(big.Int).Neg(exp)

		p, err := exact.Pow5(places)
		if err != nil {
			return nil, err
		}

		q, rem := new(big.Int).QuoRem(coeff, p, new(big.Int))
		if rem.Sign() != 0 {
			return nil, oops.Trace(ErrInexact)
		}

		f = bigfloat.New(q, exp)
	}

	if d.Negative() && f.Sign() == 0 {
		f = f.Neg()
	}

	return f, nil
}
