// Package tagged decodes and encodes the CBOR tags that carry extended
// numbers: bignums, decimal fractions, bigfloats and rationals.
package tagged

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/cbornum/bigfloat"
	"github.com/calebcase/cbornum/bignum"
	"github.com/calebcase/cbornum/decimal"
	"github.com/calebcase/cbornum/internal/exact"
	"github.com/calebcase/cbornum/number"
)

// Error is the error class for this package.
var Error = errs.Class("tagged")

// Tag numbers for extended numbers.
const (
	TagPositiveBignum          = bignum.TagPositive
	TagNegativeBignum          = bignum.TagNegative
	TagDecimalFraction         = 4
	TagBigFloat                = 5
	TagRational                = 30
	TagDecimalFractionExtended = 264
	TagBigFloatExtended        = 265
)

// maxExponentBits caps the exponent of tags 4 and 5.
const maxExponentBits = 64

// Decode interprets a node wrapped in exactly one extended number tag. When
// the node carries no tag, several tags or an unrelated tag, ok is false and
// err is nil. A recognized tag around a malformed item is an error.
func Decode(n Node) (_ number.Number, ok bool, err error) {
	defer Error.WrapP(&err)

	tags := n.Tags()
	if len(tags) != 1 {
		return number.Number{}, false, nil
	}

	switch tag := tags[0]; tag {
	case TagPositiveBignum, TagNegativeBignum:
		data, isBytes := n.Bytes()
		if !isBytes {
			return number.Number{}, true, Error.New("tag %d: content must be a byte string", tag)
		}

		return bignum.Decode(data, tag == TagNegativeBignum), true, nil

	case TagDecimalFraction, TagBigFloat, TagDecimalFractionExtended, TagBigFloatExtended:
		exp, mant, err := pair(n, tag)
		if err != nil {
			return number.Number{}, true, err
		}

		if (tag == TagDecimalFraction || tag == TagBigFloat) && exact.SignedBitLen(exp) > maxExponentBits {
			return number.Number{}, true, Error.New("tag %d: exponent exceeds %d bits", tag, maxExponentBits)
		}

		if exp.Sign() == 0 {
			return number.FromInteger(mant), true, nil
		}

		if tag == TagDecimalFraction || tag == TagDecimalFractionExtended {
			return number.FromDecimal(decimal.New(mant, exp)), true, nil
		}

		return number.FromBinaryFloat(bigfloat.New(mant, exp)), true, nil

	case TagRational:
		num, den, err := pair(n, tag)
		if err != nil {
			return number.Number{}, true, err
		}

		if den.Sign() <= 0 {
			return number.Number{}, true, Error.New("tag %d: denominator must be positive", tag)
		}

		r, err := number.NewRat(num, den)

		return r, true, err
	}

	return number.Number{}, false, nil
}

// pair returns the two integral elements of a two element array.
func pair(n Node, tag uint64) (*big.Int, *big.Int, error) {
	if l, ok := n.Len(); !ok || l != 2 {
		return nil, nil, Error.New("tag %d: content must be an array of two integers", tag)
	}

	first, ok := n.Index(0).Integer()
	if !ok {
		return nil, nil, Error.New("tag %d: first element is not an integer", tag)
	}

	second, ok := n.Index(1).Integer()
	if !ok {
		return nil, nil, Error.New("tag %d: second element is not an integer", tag)
	}

	return first, second, nil
}

// Number converts any numeric node: plain integers, floats and recognized
// extended number tags.
func Number(n Node) (_ number.Number, err error) {
	defer Error.WrapP(&err)

	if len(n.Tags()) == 0 {
		if x, ok := n.Integer(); ok {
			return number.FromInteger(x), nil
		}

		if f, ok := n.Float(); ok {
			return number.FromFloat64(f), nil
		}

		return number.Number{}, Error.New("item is not a number")
	}

	v, ok, err := Decode(n)
	if err != nil {
		return number.Number{}, err
	}

	if !ok {
		return number.Number{}, Error.New("unsupported tags: %v", n.Tags())
	}

	return v, nil
}
