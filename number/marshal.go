package number

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/calebcase/cbornum/decimal"
)

func formatFloat64(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String returns the canonical text of n's payload: decimal digits for
// integers, the shortest round-tripping form for doubles, scientific
// notation for decimals, mantissa 'p' exponent for binary floats and
// numerator/denominator for rationals.
func (n Number) String() string {
	switch n.kind {
	case FixedInteger:
		return strconv.FormatInt(n.i, 10)
	case BigInteger:
		return n.bi.Text(10)
	case BinaryDouble:
		return formatFloat64(n.f)
	case BigDecimal:
		return n.d.String()
	case BigBinaryFloat:
		return n.bf.String()
	case BigRational:
		return n.r.String()
	}

	panic(Error.New("unknown kind: %s", n.kind))
}

// MarshalJSON implements json.Marshaler. NaN and infinities become null. A
// binary float or rational is written as its exact decimal expansion when it
// has one, and as the nearest double otherwise.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsNaN() || n.IsInfinity() {
		return []byte("null"), nil
	}

	switch n.kind {
	case FixedInteger, BigInteger, BinaryDouble, BigDecimal:
		return []byte(n.String()), nil
	}

	d, err := n.Decimal()
	if err != nil {
		return []byte(formatFloat64(n.Float64())), nil
	}

	return []byte(d.String()), nil
}

// ToDecimal128 converts n to a BSON Decimal128. It fails when n has no exact
// Decimal128 representation.
func (n Number) ToDecimal128() (_ primitive.Decimal128, err error) {
	defer Error.WrapP(&err)

	d, err := n.Decimal()
	if err != nil {
		return primitive.Decimal128{}, err
	}

	return d.Decimal128()
}

// FromDecimal128 returns a BigDecimal with the value of v.
func FromDecimal128(v primitive.Decimal128) (_ Number, err error) {
	defer Error.WrapP(&err)

	d, err := decimal.FromDecimal128(v)
	if err != nil {
		return Number{}, err
	}

	return FromDecimal(d), nil
}

// MarshalBSONValue implements bson.ValueMarshaler. Integers that fit are
// written as int64, doubles as double and everything else as Decimal128.
func (n Number) MarshalBSONValue() (_ bsontype.Type, _ []byte, err error) {
	defer Error.WrapP(&err)

	switch n.kind {
	case FixedInteger:
		return bson.MarshalValue(n.i)
	case BinaryDouble:
		return bson.MarshalValue(n.f)
	case BigInteger:
		if n.bi.IsInt64() {
			return bson.MarshalValue(n.bi.Int64())
		}
	}

	v, err := n.ToDecimal128()
	if err != nil {
		return 0, nil, err
	}

	return bson.MarshalValue(v)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler for int32, int64,
// double and Decimal128 values.
func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) (err error) {
	defer Error.WrapP(&err)

	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Int32:
		if i, ok := rv.Int32OK(); ok {
			*n = FromInt64(int64(i))

			return nil
		}
	case bsontype.Int64:
		if i, ok := rv.Int64OK(); ok {
			*n = FromInt64(i)

			return nil
		}
	case bsontype.Double:
		if f, ok := rv.DoubleOK(); ok {
			*n = FromFloat64(f)

			return nil
		}
	case bsontype.Decimal128:
		if v, ok := rv.Decimal128OK(); ok {
			*n, err = FromDecimal128(v)

			return err
		}
	default:
		return Error.New("unsupported BSON type: %s", t)
	}

	return Error.New("malformed BSON %s", t)
}
