package number

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/calebcase/cbornum/bigfloat"
	"github.com/calebcase/cbornum/decimal"
)

func dec(t *testing.T, s string) Number {
	t.Helper()

	d, err := decimal.Parse(s)
	require.NoError(t, err)

	return FromDecimal(d)
}

func rat(a, b int64) Number {
	return FromRat(big.NewRat(a, b))
}

func TestFixedOverflow(t *testing.T) {
	type TC struct {
		name string
		op   func(a, b Number) (Number, error)
		a    int64
		b    int64
		kind Kind
		text string
	}

	tcs := []TC{
		{name: "max+1", op: Add, a: math.MaxInt64, b: 1, kind: BigInteger, text: "9223372036854775808"},
		{name: "min+-1", op: Add, a: math.MinInt64, b: -1, kind: BigInteger, text: "-9223372036854775809"},
		{name: "max+0", op: Add, a: math.MaxInt64, b: 0, kind: FixedInteger, text: "9223372036854775807"},
		{name: "min+max", op: Add, a: math.MinInt64, b: math.MaxInt64, kind: FixedInteger, text: "-1"},
		{name: "min-1", op: Subtract, a: math.MinInt64, b: 1, kind: BigInteger, text: "-9223372036854775809"},
		{name: "max--1", op: Subtract, a: math.MaxInt64, b: -1, kind: BigInteger, text: "9223372036854775808"},
		{name: "0-min", op: Subtract, a: 0, b: math.MinInt64, kind: BigInteger, text: "9223372036854775808"},
		{name: "-1-min", op: Subtract, a: -1, b: math.MinInt64, kind: FixedInteger, text: "9223372036854775807"},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			n, err := tc.op(FromInt64(tc.a), FromInt64(tc.b))
			require.NoError(t, err)
			require.Equal(t, tc.kind, n.Kind())
			require.Equal(t, tc.text, n.String())
		})
	}
}

func TestAddSubtractPromotion(t *testing.T) {
	type TC struct {
		name string
		a    Number
		b    Number
		kind Kind
		sum  string
		diff string
	}

	tcs := []TC{
		{
			name: "fixed+big",
			a:    FromInt64(1),
			b:    FromBigInt(big.NewInt(2)),
			kind: BigInteger,
			sum:  "3",
			diff: "-1",
		},
		{
			name: "fixed+double",
			a:    FromInt64(1),
			b:    FromFloat64(0.5),
			kind: BigBinaryFloat,
			sum:  "3p-1",
			diff: "1p-1",
		},
		{
			name: "double+decimal",
			a:    FromFloat64(0.5),
			b:    dec(t, "0.25"),
			kind: BigDecimal,
			sum:  "0.75",
			diff: "0.25",
		},
		{
			name: "bigfloat+decimal",
			a:    FromBinaryFloat(bigfloat.NewInt64(3, -1)),
			b:    dec(t, "1"),
			kind: BigDecimal,
			sum:  "2.5",
			diff: "0.5",
		},
		{
			name: "decimal+rational",
			a:    dec(t, "0.1"),
			b:    rat(1, 3),
			kind: BigRational,
			sum:  "13/30",
			diff: "-7/30",
		},
		{
			name: "nan+decimal",
			a:    FromFloat64(math.NaN()),
			b:    dec(t, "1"),
			kind: BigDecimal,
			sum:  "NaN",
			diff: "NaN",
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			sum, err := Add(tc.a, tc.b)
			require.NoError(t, err)
			require.Equal(t, tc.kind, sum.Kind(), spew.Sdump(sum))
			require.Equal(t, tc.sum, sum.String())

			diff, err := Subtract(tc.a, tc.b)
			require.NoError(t, err)
			require.Equal(t, tc.kind, diff.Kind())
			require.Equal(t, tc.diff, diff.String())
		})
	}
}

func TestAddNotFinite(t *testing.T) {
	_, err := Add(FromFloat64(math.Inf(1)), rat(1, 2))
	require.Error(t, err)
	require.True(t, Error.Has(err))

	_, err = Subtract(rat(1, 2), FromFloat64(math.NaN()))
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	huge := dec(t, "1E+999999999")

	type TC struct {
		name string
		a    Number
		b    Number
		cmp  int
	}

	tcs := []TC{
		{name: "nan/fixed", a: FromFloat64(math.NaN()), b: FromInt64(5), cmp: 1},
		{name: "fixed/nan decimal", a: FromInt64(5), b: dec(t, "NaN"), cmp: -1},
		{name: "nan/nan", a: FromFloat64(math.NaN()), b: dec(t, "NaN"), cmp: 0},
		{name: "nan/inf", a: FromBinaryFloat(bigfloat.NewNaN()), b: FromFloat64(math.Inf(1)), cmp: 1},
		{name: "sign decides", a: FromInt64(-1), b: dec(t, "0.5"), cmp: -1},
		{name: "third/approximation", a: rat(1, 3), b: dec(t, "0.3333333333"), cmp: 1},
		{name: "decimal/double", a: dec(t, "0.1"), b: FromFloat64(0.1), cmp: -1},
		{name: "double/rational", a: FromFloat64(0.5), b: rat(1, 2), cmp: 0},
		{name: "big/double", a: FromBigInt(new(big.Int).Lsh(big.NewInt(1), 70)), b: FromFloat64(math.Ldexp(1, 70)), cmp: 0},
		{name: "bigfloat/double", a: FromBinaryFloat(bigfloat.NewInt64(3, -1)), b: FromFloat64(1.5), cmp: 0},
		{name: "zeros", a: FromInt64(0), b: FromFloat64(math.Copysign(0, -1)), cmp: 0},
		{name: "inf/huge", a: FromFloat64(math.Inf(1)), b: huge, cmp: 1},
		{name: "huge/fixed", a: huge, b: FromInt64(math.MaxInt64), cmp: 1},
		{name: "-inf/min", a: dec(t, "-Infinity"), b: FromInt64(math.MinInt64), cmp: -1},
		{name: "fixed/big", a: FromInt64(3), b: FromBigInt(big.NewInt(3)), cmp: 0},
		{name: "negative rational/decimal", a: rat(-1, 3), b: dec(t, "-0.3333333333"), cmp: -1},
		{name: "rational/fixed", a: rat(7, 2), b: FromInt64(3), cmp: 1},
		{name: "same kind doubles", a: FromFloat64(1), b: FromFloat64(2), cmp: -1},
		{name: "same kind nan doubles", a: FromFloat64(math.NaN()), b: FromFloat64(math.Inf(1)), cmp: 1},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			require.Equal(t, tc.cmp, Compare(tc.a, tc.b))
			require.Equal(t, -tc.cmp, Compare(tc.b, tc.a))
		})
	}
}

func TestCompareWideMantissa(t *testing.T) {
	k := int64(4194305)
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(k), nil)
	e := int64(v.BitLen() - 64)
	m := new(big.Int).Rsh(v, uint(e))

	d := FromDecimal(decimal.NewInt64(1, k))
	lo := FromBinaryFloat(bigfloat.New(m, big.NewInt(e)))
	hi := FromBinaryFloat(bigfloat.New(new(big.Int).Add(m, big.NewInt(1)), big.NewInt(e)))

	require.Equal(t, 1, Compare(d, lo))
	require.Equal(t, -1, Compare(lo, d))
	require.Equal(t, -1, Compare(d, hi))
	require.Equal(t, 1, Compare(hi, d))
	require.Equal(t, -1, Compare(lo, hi))
}

func TestEqual(t *testing.T) {
	require.False(t, Equal(FromInt64(1), FromFloat64(1)))
	require.False(t, Equal(dec(t, "1.0"), dec(t, "1.00")))
	require.True(t, Equal(dec(t, "1.0"), dec(t, "1.0")))
	require.True(t, Equal(FromFloat64(math.NaN()), FromFloat64(math.NaN())))
	require.False(t, Equal(FromFloat64(0), FromFloat64(math.Copysign(0, -1))))
	require.True(t, rat(2, 4).Equal(rat(1, 2)))
	require.False(t, Equal(FromInt64(3), FromBigInt(big.NewInt(3))))
}

func TestNewRat(t *testing.T) {
	n, err := NewRat(big.NewInt(6), big.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, "3/2", n.String())

	for _, den := range []int64{0, -1} {
		_, err := NewRat(big.NewInt(1), big.NewInt(den))
		require.Error(t, err)
		require.True(t, Error.Has(err))
	}
}

func TestSign(t *testing.T) {
	require.Equal(t, NotANumber, FromFloat64(math.NaN()).Sign())
	require.Equal(t, Negative, dec(t, "-Infinity").Sign())
	require.Equal(t, Zero, dec(t, "-0.0").Sign())
	require.Equal(t, Positive, rat(1, 9).Sign())
	require.True(t, dec(t, "-0.0").IsNegative())
	require.False(t, FromFloat64(math.NaN()).IsNegative())
}

func TestConversions(t *testing.T) {
	d, err := rat(1, 8).Decimal()
	require.NoError(t, err)
	require.Equal(t, "0.125", d.String())

	_, err = rat(1, 3).Decimal()
	require.Error(t, err)

	f, err := dec(t, "0.5").BinaryFloat()
	require.NoError(t, err)
	require.Equal(t, "1p-1", f.String())

	f, err = dec(t, "-0.00").BinaryFloat()
	require.NoError(t, err)
	require.True(t, f.Negative())

	_, err = dec(t, "0.1").BinaryFloat()
	require.Error(t, err)

	x, ok := FromFloat64(1e20).BigInt()
	require.True(t, ok)
	require.Equal(t, "100000000000000000000", x.String())

	i, ok := dec(t, "1E+2").Int64()
	require.True(t, ok)
	require.Equal(t, int64(100), i)

	_, ok = dec(t, "1.5").Int64()
	require.False(t, ok)

	_, ok = FromBigInt(new(big.Int).Lsh(big.NewInt(1), 64)).Int64()
	require.False(t, ok)

	require.Equal(t, 0.1, dec(t, "0.1").Float64())
	require.Equal(t, 0.75, rat(3, 4).Float64())

	_, err = FromFloat64(math.Inf(-1)).Rat()
	require.Error(t, err)
}

func TestString(t *testing.T) {
	type TC struct {
		n    Number
		text string
	}

	tcs := []TC{
		{n: FromInt64(-7), text: "-7"},
		{n: FromFloat64(math.Copysign(0, -1)), text: "-0"},
		{n: FromFloat64(math.Inf(1)), text: "Infinity"},
		{n: FromFloat64(1e21), text: "1e+21"},
		{n: rat(1, 3), text: "1/3"},
		{n: rat(2, 1), text: "2/1"},
		{n: FromBinaryFloat(bigfloat.NewInt64(-5, -3)), text: "-5p-3"},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.text), func(t *testing.T) {
			require.Equal(t, tc.text, tc.n.String())
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Number{
		FromInt64(1),
		FromFloat64(math.NaN()),
		dec(t, "-0.0"),
		FromBinaryFloat(bigfloat.NewInt64(3, -1)),
		rat(1, 4),
		rat(1, 3),
		dec(t, "Infinity"),
	})
	require.NoError(t, err)
	require.Equal(t, `[1,null,-0.0,1.5,0.25,0.3333333333333333,null]`, string(data))
}

func TestBSON(t *testing.T) {
	type Doc struct {
		N Number `bson:"n"`
	}

	tcs := []Number{
		FromInt64(42),
		FromFloat64(0.5),
		dec(t, "1.23"),
		FromBigInt(new(big.Int).Lsh(big.NewInt(1), 70)),
		rat(1, 8),
	}

	for i, n := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, n), func(t *testing.T) {
			data, err := bson.Marshal(Doc{N: n})
			require.NoError(t, err)

			var out Doc
			require.NoError(t, bson.Unmarshal(data, &out))
			require.Equal(t, 0, Compare(n, out.N), spew.Sdump(out))
		})
	}

	_, err := bson.Marshal(Doc{N: rat(1, 3)})
	require.Error(t, err)
}
