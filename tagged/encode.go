package tagged

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/calebcase/cbornum/bignum"
	"github.com/calebcase/cbornum/number"
)

// EncMode is the CBOR encoding mode used for tagged numbers.
var EncMode = func() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	options.BigIntConvert = cbor.BigIntConvertNone
	encMode, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// Value wraps a Number so it can be embedded in values passed to a CBOR
// encoder or decoder.
type Value struct {
	number.Number
}

var (
	_ cbor.Marshaler   = Value{}
	_ cbor.Unmarshaler = (*Value)(nil)
)

// Marshal encodes n as a CBOR data item.
func Marshal(n number.Number) ([]byte, error) {
	return Value{n}.MarshalCBOR()
}

// integer returns the CBOR form of x: a plain integer when it fits in an
// int64 or uint64, otherwise a bignum.
func integer(x *big.Int) any {
	switch {
	case x.IsInt64():
		return x.Int64()
	case x.IsUint64():
		return x.Uint64()
	}

	return bignum.Encode(x)
}

// exponentTag picks the base tag when the exponent is a plain CBOR integer
// and the extended tag otherwise.
func exponentTag(exp *big.Int, base, extended uint64) uint64 {
	if exp.IsInt64() || exp.IsUint64() {
		return base
	}

	return extended
}

// MarshalCBOR implements cbor.Marshaler. Negative zero decimals and binary
// floats are written as positive zero; their NaN and infinities are written
// as CBOR floats.
func (v Value) MarshalCBOR() (_ []byte, err error) {
	defer Error.WrapP(&err)

	n := v.Number

	switch n.Kind() {
	case number.FixedInteger, number.BigInteger:
		x, _ := n.BigInt()

		return EncMode.Marshal(integer(x))

	case number.BinaryDouble:
		return EncMode.Marshal(n.Float64())

	case number.BigDecimal, number.BigBinaryFloat:
		if n.IsNaN() || n.IsInfinity() {
			return EncMode.Marshal(n.Float64())
		}

		var exp, mant *big.Int
		var tag uint64

		if n.Kind() == number.BigDecimal {
			d, err := n.Decimal()
			if err != nil {
				return nil, err
			}

			exp, mant = d.Exponent(), d.Coefficient()
			tag = exponentTag(exp, TagDecimalFraction, TagDecimalFractionExtended)
		} else {
			f, err := n.BinaryFloat()
			if err != nil {
				return nil, err
			}

			exp, mant = f.Exponent(), f.Mantissa()
			tag = exponentTag(exp, TagBigFloat, TagBigFloatExtended)
		}

		return EncMode.Marshal(cbor.Tag{
			Number:  tag,
			Content: []any{integer(exp), integer(mant)},
		})

	case number.BigRational:
		r, err := n.Rat()
		if err != nil {
			return nil, err
		}

		return EncMode.Marshal(cbor.Tag{
			Number:  TagRational,
			Content: []any{integer(r.Num()), integer(r.Denom())},
		})
	}

	return nil, Error.New("unknown kind: %s", n.Kind())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(data []byte) (err error) {
	defer Error.WrapP(&err)

	node, err := Parse(data)
	if err != nil {
		return err
	}

	v.Number, err = Number(node)

	return err
}
