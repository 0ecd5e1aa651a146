// Package exact compares and scales arbitrary-precision magnitudes without
// rounding.
package exact

import (
	"math/big"
	"math/bits"
	"sync"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("exact")

// ErrTooLarge is returned when an exact result would require a power of ten
// or two larger than MaxExponent.
var ErrTooLarge = Error.New("exponent too large for exact arithmetic")

// MaxExponent bounds the powers materialized by Pow10, Pow5 and Lsh.
const MaxExponent = 1 << 22

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)

	maxExponent = big.NewInt(MaxExponent)
)

// Exponent converts n to an int if it lies within ±MaxExponent.
func Exponent(n *big.Int) (int, error) {
	if new(big.Int).Abs(n).Cmp(maxExponent) > 0 {
		return 0, oops.Trace(ErrTooLarge)
	}

	return int(n.Int64()), nil
}

// Pow10 returns 10^n for 0 <= n <= MaxExponent.
func Pow10(n *big.Int) (*big.Int, error) {
	return pow(bigTen, n)
}

// Pow5 returns 5^n for 0 <= n <= MaxExponent.
func Pow5(n *big.Int) (*big.Int, error) {
	return pow(bigFive, n)
}

func pow(base, n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, Error.New("negative power: %s", n)
	}

	if _, err := Exponent(n); err != nil {
		return nil, err
	}

	return new(big.Int).Exp(base, n, nil), nil
}

// Lsh returns x << n for 0 <= n <= MaxExponent.
func Lsh(x, n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, Error.New("negative shift: %s", n)
	}

	s, err := Exponent(n)
	if err != nil {
		return nil, err
	}

	return new(big.Int).Lsh(x, uint(s)), nil
}

// SignedBitLen returns the number of bits needed to store x in two's
// complement, excluding the sign bit.
func SignedBitLen(x *big.Int) int {
	if x.Sign() >= 0 {
		return x.BitLen()
	}

	y := new(big.Int).Neg(x)
	y.Sub(y, bigOne)

	return y.BitLen()
}

// Magnitude is the positive value Num/Den * 2^Pow2 * 5^Pow5. Nil fields
// default to Den = 1 and Pow2 = Pow5 = 0. Num must be positive.
type Magnitude struct {
	Num  *big.Int
	Den  *big.Int
	Pow2 *big.Int
	Pow5 *big.Int
}

func (m Magnitude) den() *big.Int {
	if m.Den == nil {
		return bigOne
	}

	return m.Den
}

func orZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}

	return x
}

// alignBits bounds the size in bits of the aligned operands Cmp multiplies
// out before it turns to logarithms.
var alignBits int64 = 1 << 25

// smallBits is the aligned size below which Cmp skips the logarithm check.
const smallBits = 1 << 12

// maxAlignBits bounds the aligned operands when logarithms at every
// precision tried fail to separate the magnitudes.
const maxAlignBits = 1 << 34

// Cmp compares two magnitudes exactly. Small operands are aligned and
// compared as integers. Larger magnitudes that are far apart are decided by
// a low precision logarithm. The rest are aligned when they fit in
// alignBits; beyond that the logarithms are refined until their difference
// exceeds the error bound.
func Cmp(a, b Magnitude) int {
	d2 := new(big.Int).Sub(orZero(a.Pow2), orZero(b.Pow2))
	d5 := new(big.Int).Sub(orZero(a.Pow5), orZero(b.Pow5))

	size := alignedBits(a, b, d2, d5)
	if size.Cmp(big.NewInt(smallBits)) <= 0 {
		return align(a, b, d2, d5)
	}

	scale := scaleBits(a, b)

	c, ok := cmpLog(a, b, 32, scale)
	if ok {
		return c
	}

	if size.Cmp(big.NewInt(alignBits)) <= 0 {
		return align(a, b, d2, d5)
	}

	limit := 2*uint(inputBits(a, b)+scale) + 256
	for prec := uint(64); ; prec *= 2 {
		c, ok = cmpLog(a, b, prec, scale)
		if ok {
			return c
		}

		if prec >= limit {
			break
		}
	}

	if size.Cmp(big.NewInt(maxAlignBits)) <= 0 {
		return align(a, b, d2, d5)
	}

	return c
}

func align(a, b Magnitude, d2, d5 *big.Int) int {
	left := new(big.Int).Mul(a.Num, b.den())
	right := new(big.Int).Mul(b.Num, a.den())

	switch d2.Sign() {
	case 1:
		left.Lsh(left, uint(d2.Int64()))
	case -1:
		right.Lsh(right, uint(-d2.Int64()))
	}

	switch d5.Sign() {
	case 1:
		left.Mul(left, new(big.Int).Exp(bigFive, d5, nil))
	case -1:
		right.Mul(right, new(big.Int).Exp(bigFive, new(big.Int).Neg(d5), nil))
	}

	return left.Cmp(right)
}

// alignedBits returns an upper bound on the bit length of the larger
// operand align would build.
func alignedBits(a, b Magnitude, d2, d5 *big.Int) *big.Int {
	side := func(num, den *big.Int, d2, d5 *big.Int) *big.Int {
		n := big.NewInt(int64(num.BitLen() + den.BitLen()))
		if d2.Sign() > 0 {
			n.Add(n, d2)
		}
		if d5.Sign() > 0 {
			// log2(5) < 7/3
			p := new(big.Int).Mul(d5, big.NewInt(7))
			n.Add(n, p.Quo(p, big.NewInt(3)).Add(p, bigOne))
		}

		return n
	}

	left := side(a.Num, b.den(), d2, d5)
	right := side(b.Num, a.den(), new(big.Int).Neg(d2), new(big.Int).Neg(d5))

	if left.Cmp(right) > 0 {
		return left
	}

	return right
}

func inputBits(a, b Magnitude) int {
	return a.Num.BitLen() + a.den().BitLen() + b.Num.BitLen() + b.den().BitLen()
}

// scaleBits bounds log2 of the largest logarithm cmpLog sums, so that a
// working precision of prec+scaleBits leaves prec fractional bits.
func scaleBits(a, b Magnitude) int {
	n := 0
	for _, x := range []*big.Int{orZero(a.Pow2), orZero(a.Pow5), orZero(b.Pow2), orZero(b.Pow5)} {
		if l := x.BitLen(); l > n {
			n = l
		}
	}

	for _, x := range []*big.Int{a.Num, a.den(), b.Num, b.den()} {
		if l := bits.Len(uint(x.BitLen())); l > n {
			n = l
		}
	}

	return n + 4
}

// cmpLog compares the natural logarithms of a and b. The logarithms are
// computed at a working precision whose accumulated error stays below
// 2^-prec, so the result is reported only when the difference exceeds that.
func cmpLog(a, b Magnitude, prec uint, scale int) (int, bool) {
	work := prec + uint(scale) + 32
	ln2, ln5 := logConstants(work)

	diff := a.ln(work, ln2, ln5)
	diff.Sub(diff, b.ln(work, ln2, ln5))

	if diff.Sign() == 0 || diff.MantExp(nil) <= 1-int(prec) {
		return diff.Sign(), false
	}

	return diff.Sign(), true
}

// ln returns the natural logarithm of the magnitude at precision prec.
func (m Magnitude) ln(prec uint, ln2, ln5 *big.Float) *big.Float {
	l := lnInt(m.Num, prec, ln2)
	l.Sub(l, lnInt(m.den(), prec, ln2))

	t := new(big.Float).SetPrec(prec).SetInt(orZero(m.Pow2))
	l.Add(l, t.Mul(t, ln2))

	t = new(big.Float).SetPrec(prec).SetInt(orZero(m.Pow5))
	l.Add(l, t.Mul(t, ln5))

	return l
}

// lnInt returns ln(x) for x > 0 as (n-1)·ln2 + ln(y) where y = x/2^(n-1)
// lies in [1, 2] and n is the bit length of x.
func lnInt(x *big.Int, prec uint, ln2 *big.Float) *big.Float {
	n := x.BitLen()

	y := new(big.Float).SetPrec(prec).SetInt(x)
	y.SetMantExp(y, 1-n)

	one := new(big.Float).SetPrec(prec).SetInt64(1)
	num := new(big.Float).SetPrec(prec).Sub(y, one)
	den := new(big.Float).SetPrec(prec).Add(y, one)

	l := atanh(num.Quo(num, den), prec)
	l.SetMantExp(l, 1)

	t := new(big.Float).SetPrec(prec).SetInt64(int64(n - 1))

	return l.Add(l, t.Mul(t, ln2))
}

// atanh sums the series z + z^3/3 + z^5/5 + ... for 0 <= z <= 1/3.
func atanh(z *big.Float, prec uint) *big.Float {
	sum := new(big.Float).SetPrec(prec)
	if z.Sign() == 0 {
		return sum
	}

	z2 := new(big.Float).SetPrec(prec).Mul(z, z)
	pow := new(big.Float).SetPrec(prec).Set(z)
	term := new(big.Float).SetPrec(prec)
	k := new(big.Float)

	for i := int64(1); ; i += 2 {
		term.Quo(pow, k.SetInt64(i))
		sum.Add(sum, term)

		if term.MantExp(nil) < -int(prec)-8 {
			return sum
		}

		pow.Mul(pow, z2)
	}
}

var constants struct {
	sync.Mutex
	prec     uint
	ln2, ln5 *big.Float
}

// logConstants returns ln 2 and ln 5 rounded to prec. ln 2 = 2·atanh(1/3)
// and ln 5 = 2·ln 2 + 2·atanh(1/9).
func logConstants(prec uint) (ln2, ln5 *big.Float) {
	constants.Lock()
	defer constants.Unlock()

	if constants.prec < prec {
		p := prec + 32

		third := new(big.Float).SetPrec(p).SetInt64(1)
		third.Quo(third, new(big.Float).SetPrec(p).SetInt64(3))
		two := atanh(third, p)
		two.SetMantExp(two, 1)

		ninth := new(big.Float).SetPrec(p).SetInt64(1)
		ninth.Quo(ninth, new(big.Float).SetPrec(p).SetInt64(9))
		five := atanh(ninth, p)
		five.SetMantExp(five, 1)
		five.Add(five, new(big.Float).SetPrec(p).SetMantExp(two, 1))

		constants.prec = p
		constants.ln2 = two
		constants.ln5 = five
	}

	ln2 = new(big.Float).SetPrec(prec).Set(constants.ln2)
	ln5 = new(big.Float).SetPrec(prec).Set(constants.ln5)

	return ln2, ln5
}

// Operand is a signed, possibly infinite value prepared for comparison. Mag
// is ignored when Sign is zero or Inf is set.
type Operand struct {
	NaN  bool
	Inf  bool
	Sign int
	Mag  Magnitude
}

// Compare orders two operands. NaN compares greater than every other value
// and equal to NaN.
func Compare(a, b Operand) int {
	switch {
	case a.NaN && b.NaN:
		return 0
	case a.NaN:
		return 1
	case b.NaN:
		return -1
	}

	if a.Sign != b.Sign {
		if a.Sign < b.Sign {
			return -1
		}

		return 1
	}

	switch {
	case a.Sign == 0:
		return 0
	case a.Inf && b.Inf:
		return 0
	case a.Inf:
		return a.Sign
	case b.Inf:
		return -b.Sign
	}

	return Cmp(a.Mag, b.Mag) * a.Sign
}

// RatOperand prepares a rational for Compare.
func RatOperand(r *big.Rat) Operand {
	return Operand{
		Sign: r.Sign(),
		Mag: Magnitude{
			Num: new(big.Int).Abs(r.Num()),
			Den: r.Denom(),
		},
	}
}

// IntOperand prepares an integer for Compare.
func IntOperand(x *big.Int) Operand {
	return Operand{
		Sign: x.Sign(),
		Mag: Magnitude{
			Num: new(big.Int).Abs(x),
		},
	}
}
