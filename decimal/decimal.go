package decimal

import (
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/zeebo/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/calebcase/cbornum/bigfloat"
	"github.com/calebcase/cbornum/internal/exact"
)

// Error is the error class for this package.
var Error = errs.Class("decimal")

// Form distinguishes finite values from infinities and NaN.
type Form uint8

// Forms
const (
	Finite Form = iota
	Infinite
	NaN
)

// Decimal is a base 10 floating point number. The zero value is +0.
type Decimal struct {
	form     Form
	negative bool
	coeff    big.Int
	exp      big.Int
}

// New returns mantissa * 10^exponent.
func New(mantissa, exponent *big.Int) *Decimal {
	d := &Decimal{
		negative: mantissa.Sign() < 0,
	}
	d.coeff.Abs(mantissa)
	d.exp.Set(exponent)

	return d
}

// NewInt64 returns mantissa * 10^exponent.
func NewInt64(mantissa, exponent int64) *Decimal {
	return New(big.NewInt(mantissa), big.NewInt(exponent))
}

// FromBigInt returns x with exponent zero.
func FromBigInt(x *big.Int) *Decimal {
	return New(x, new(big.Int))
}

// Inf returns an infinity with the given sign.
func Inf(negative bool) *Decimal {
	return &Decimal{form: Infinite, negative: negative}
}

// NewNaN returns a NaN.
func NewNaN() *Decimal {
	return &Decimal{form: NaN}
}

// FromBinary returns the exact decimal value of f. Every binary float has a
// terminating decimal expansion, but it may need a power of five too large
// to materialize.
func FromBinary(f *bigfloat.Float) (_ *Decimal, err error) {
	defer Error.WrapP(&err)

	switch f.Form() {
	case bigfloat.NaN:
		return NewNaN(), nil
	case bigfloat.Infinite:
		return Inf(f.Negative()), nil
	}

	exp := f.Exponent()
	mant := f.Mantissa()

	var d *Decimal
	if exp.Sign() >= 0 {
		c, err := exact.Lsh(mant, exp)
		if err != nil {
			return nil, err
		}

		d = New(c, new(big.Int))
	} else {
		p, err := exact.Pow5(new(big.Int).Neg(exp))
		if err != nil {
			return nil, err
		}

		d = New(mant.Mul(mant, p), exp)
	}
	d.negative = f.Negative()

	return d, nil
}

// Form returns the form of d.
func (d *Decimal) Form() Form { return d.form }

// IsNaN reports whether d is NaN.
func (d *Decimal) IsNaN() bool { return d.form == NaN }

// IsInf reports whether d is an infinity.
func (d *Decimal) IsInf() bool { return d.form == Infinite }

// IsZero reports whether d is a finite zero of either sign.
func (d *Decimal) IsZero() bool { return d.form == Finite && d.coeff.Sign() == 0 }

// Negative reports whether the sign bit of d is set. It is true for -0.
func (d *Decimal) Negative() bool { return d.negative }

// Sign returns -1, 0 or +1. The sign of NaN is 0; use IsNaN to tell it apart
// from zero.
func (d *Decimal) Sign() int {
	switch {
	case d.form == NaN:
		return 0
	case d.form == Finite && d.coeff.Sign() == 0:
		return 0
	case d.negative:
		return -1
	}

	return 1
}

// Coefficient returns the signed coefficient. The sign of -0 is lost; use
// Negative.
func (d *Decimal) Coefficient() *big.Int {
	c := new(big.Int).Set(&d.coeff)
	if d.negative {
		c.Neg(c)
	}

	return c
}

// Exponent returns the decimal exponent.
func (d *Decimal) Exponent() *big.Int {
	return new(big.Int).Set(&d.exp)
}

// Neg returns -d. Negating zero yields a zero of the opposite sign.
func (d *Decimal) Neg() *Decimal {
	e := &Decimal{form: d.form, negative: !d.negative}
	if d.form == NaN {
		e.negative = d.negative
	}
	e.coeff.Set(&d.coeff)
	e.exp.Set(&d.exp)

	return e
}

// IsIntegral reports whether d is a finite integer.
func (d *Decimal) IsIntegral() bool {
	if d.form != Finite {
		return false
	}
	if d.coeff.Sign() == 0 || d.exp.Sign() >= 0 {
		return true
	}

	places := new(big.Int).Neg(&d.exp)
	if places.Cmp(big.NewInt(int64(len(d.coeff.Text(10))))) >= 0 {
		return false
	}

	p, err := exact.Pow10(places)
	if err != nil {
		return false
	}

	return new(big.Int).Rem(&d.coeff, p).Sign() == 0
}

// Add returns d + e.
func (d *Decimal) Add(e *Decimal) (*Decimal, error) {
	return add(d, e)
}

// Sub returns d - e.
func (d *Decimal) Sub(e *Decimal) (*Decimal, error) {
	return add(d, e.Neg())
}

func add(x, y *Decimal) (_ *Decimal, err error) {
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

	cx, err := scale(x.Coefficient(), new(big.Int).Sub(&x.exp, exp))
	if err != nil {
		return nil, err
	}

	cy, err := scale(y.Coefficient(), new(big.Int).Sub(&y.exp, exp))
	if err != nil {
		return nil, err
	}

	sum := New(cx.Add(cx, cy), exp)
	if sum.coeff.Sign() == 0 {
		sum.negative = x.negative && y.negative
	}

	return sum, nil
}

func scale(c, places *big.Int) (*big.Int, error) {
	if places.Sign() == 0 || c.Sign() == 0 {
		return c, nil
	}

	p, err := exact.Pow10(places)
	if err != nil {
		return nil, err
	}

	return c.Mul(c, p), nil
}

// Operand prepares d for exact comparison.
func (d *Decimal) Operand() exact.Operand {
	return exact.Operand{
		NaN:  d.form == NaN,
		Inf:  d.form == Infinite,
		Sign: d.Sign(),
		Mag: exact.Magnitude{
			Num:  &d.coeff,
			Pow2: &d.exp,
			Pow5: &d.exp,
		},
	}
}

// Cmp compares d and e numerically. NaN is greater than every other value
// and equal to NaN; -0 equals +0.
func (d *Decimal) Cmp(e *Decimal) int {
	return exact.Compare(d.Operand(), e.Operand())
}

// CmpRat compares d with the rational r without rounding either.
func CmpRat(d *Decimal, r *big.Rat) int {
	return exact.Compare(d.Operand(), exact.RatOperand(r))
}

// CmpBinary compares d with the binary float f without rounding either.
func CmpBinary(d *Decimal, f *bigfloat.Float) int {
	return exact.Compare(d.Operand(), f.Operand())
}

// Rat returns the exact value of a finite d.
func (d *Decimal) Rat() (_ *big.Rat, err error) {
	defer Error.WrapP(&err)

	if d.form != Finite {
		return nil, Error.New("not finite: %s", d)
	}

	if d.exp.Sign() >= 0 {
		c, err := scale(d.Coefficient(), &d.exp)
		if err != nil {
			return nil, err
		}

		return new(big.Rat).SetInt(c), nil
	}

	p, err := exact.Pow10(new(big.Int).Neg(&d.exp))
	if err != nil {
		return nil, err
	}

	return new(big.Rat).SetFrac(d.Coefficient(), p), nil
}

// Float64 returns the nearest float64 to d.
func (d *Decimal) Float64() float64 {
	switch d.form {
	case NaN:
		return math.NaN()
	case Infinite:
		if d.negative {
			return math.Inf(-1)
		}

		return math.Inf(1)
	}

	sign := 1.0
	if d.negative {
		sign = -1
	}

	if d.coeff.Sign() == 0 {
		return math.Copysign(0, sign)
	}

	digits := int64(len(d.coeff.Text(10)))
	adjusted := new(big.Int).Add(&d.exp, big.NewInt(digits))
	switch {
	case d.exp.Cmp(big.NewInt(400)) > 0:
		return math.Copysign(math.Inf(1), sign)
	case adjusted.Cmp(big.NewInt(-400)) < 0:
		return math.Copysign(0, sign)
	}

	r, err := d.Rat()
	if err != nil {
		return math.Copysign(0, sign)
	}

	f, _ := r.Float64()

	return f
}

// String formats d with the General Decimal Arithmetic to-scientific-string
// rules.
func (d *Decimal) String() string {
	var b strings.Builder

	if d.negative && d.form != NaN {
		b.WriteByte('-')
	}

	switch d.form {
	case NaN:
		return "NaN"
	case Infinite:
		b.WriteString("Infinity")

		return b.String()
	}

	digits := d.coeff.Text(10)
	adjusted := new(big.Int).Add(&d.exp, big.NewInt(int64(len(digits)-1)))

	if d.exp.Sign() <= 0 && adjusted.Cmp(big.NewInt(-6)) >= 0 {
		if d.exp.Sign() == 0 {
			b.WriteString(digits)

			return b.String()
		}

		point := len(digits) + int(d.exp.Int64())
		if point > 0 {
			b.WriteString(digits[:point])
			b.WriteByte('.')
			b.WriteString(digits[point:])
		} else {
			b.WriteString("0.")
			b.WriteString(strings.Repeat("0", -point))
			b.WriteString(digits)
		}

		return b.String()
	}

	b.WriteString(digits[:1])
	if len(digits) > 1 {
		b.WriteByte('.')
		b.WriteString(digits[1:])
	}
	b.WriteByte('E')
	if adjusted.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(adjusted.Text(10))

	return b.String()
}

// Parse reads a decimal in the General Decimal Arithmetic numeric string
// syntax: an optional sign followed by digits with an optional point and
// exponent, or Infinity, Inf or NaN in any case.
func Parse(s string) (_ *Decimal, err error) {
	defer Error.WrapP(&err)

	text := s
	negative := false
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	switch strings.ToLower(text) {
	case "inf", "infinity":
		return Inf(negative), nil
	case "nan", "snan":
		return NewNaN(), nil
	}

	var coeff, frac strings.Builder
	i := 0
	point := false
scan:
	for ; i < len(text); i++ {
		c := text[i]
		switch {
		case isDigit(c):
			coeff.WriteByte(c)
			if point {
				frac.WriteByte(c)
			}
		case c == '.' && !point:
			point = true
		default:
			break scan
		}
	}

	if coeff.Len() == 0 {
		return nil, Error.New("invalid decimal: %q", s)
	}

	exp := new(big.Int)
	if i < len(text) {
		if text[i] != 'e' && text[i] != 'E' {
			return nil, Error.New("invalid decimal: %q", s)
		}

		digits := text[i+1:]
		expNegative := false
		if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
			expNegative = digits[0] == '-'
			digits = digits[1:]
		}

		if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return nil, Error.New("invalid decimal exponent: %q", s)
		}

		exp.SetString(digits, 10)
		if expNegative {
			exp.Neg(exp)
		}
	}

	c, _ := new(big.Int).SetString(coeff.String(), 10)
	exp.Sub(exp, big.NewInt(int64(frac.Len())))

	d := New(c, exp)
	d.negative = negative

	return d, nil
}

// Equal reports whether d and e have identical form, sign, coefficient and
// exponent. 1.0 and 1.00 are not Equal.
func (d *Decimal) Equal(e *Decimal) bool {
	return d.form == e.form &&
		d.negative == e.negative &&
		d.coeff.Cmp(&e.coeff) == 0 &&
		d.exp.Cmp(&e.exp) == 0
}

// APD converts d to an apd.Decimal. It fails when the exponent does not fit
// in an int32.
func (d *Decimal) APD() (_ *apd.Decimal, err error) {
	defer Error.WrapP(&err)

	if d.form == Finite && !fitsInt32(&d.exp) {
		return nil, Error.New("exponent out of apd range: %s", &d.exp)
	}

	a, _, err := apd.NewFromString(d.String())
	if err != nil {
		return nil, err
	}

	return a, nil
}

// FromAPD converts an apd.Decimal. Signaling NaNs become NaN.
func FromAPD(a *apd.Decimal) (*Decimal, error) {
	return Parse(a.String())
}

// Decimal128 converts d to a BSON Decimal128. It fails when d cannot be
// represented exactly.
func (d *Decimal) Decimal128() (_ primitive.Decimal128, err error) {
	defer Error.WrapP(&err)

	return primitive.ParseDecimal128(d.String())
}

// FromDecimal128 converts a BSON Decimal128.
func FromDecimal128(v primitive.Decimal128) (*Decimal, error) {
	return Parse(v.String())
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fitsInt32(x *big.Int) bool {
	return x.IsInt64() && x.Int64() >= math.MinInt32 && x.Int64() <= math.MaxInt32
}
