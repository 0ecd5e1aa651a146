package number

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/calebcase/cbornum/decimal"
)

func TestAddProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("add is commutative", prop.ForAll(
		func(a, b int64) bool {
			x, err := Add(FromInt64(a), FromInt64(b))
			if err != nil {
				return false
			}

			y, err := Add(FromInt64(b), FromInt64(a))
			if err != nil {
				return false
			}

			return x.Kind() == y.Kind() && Compare(x, y) == 0
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("subtract is anti-commutative", prop.ForAll(
		func(a, b int64) bool {
			x, err := Subtract(FromInt64(a), FromInt64(b))
			if err != nil {
				return false
			}

			y, err := Subtract(FromInt64(b), FromInt64(a))
			if err != nil {
				return false
			}

			z, err := Add(x, y)
			if err != nil {
				return false
			}

			return Compare(z, FromInt64(0)) == 0
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("add matches big.Int", prop.ForAll(
		func(a, b int64) bool {
			x, err := Add(FromInt64(a), FromInt64(b))
			if err != nil {
				return false
			}

			want := new(big.Int).Add(big.NewInt(a), big.NewInt(b))
			got, ok := x.BigInt()

			return ok && got.Cmp(want) == 0 && (x.Kind() == FixedInteger) == want.IsInt64()
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("rational add is associative", prop.ForAll(
		func(a, b, c int64) bool {
			x, y, z := FromRat(big.NewRat(a, 3)), FromRat(big.NewRat(b, 7)), FromRat(big.NewRat(c, 11))

			xy, err := Add(x, y)
			if err != nil {
				return false
			}
			left, err := Add(xy, z)
			if err != nil {
				return false
			}

			yz, err := Add(y, z)
			if err != nil {
				return false
			}
			right, err := Add(x, yz)
			if err != nil {
				return false
			}

			return Equal(left, right)
		},
		gen.Int64(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("decimal add is associative", prop.ForAll(
		func(a, b, c int64) bool {
			x := FromDecimal(decimal.NewInt64(a, -2))
			y := FromDecimal(decimal.NewInt64(b, 3))
			z := FromDecimal(decimal.NewInt64(c, 0))

			xy, err := Add(x, y)
			if err != nil {
				return false
			}
			left, err := Add(xy, z)
			if err != nil {
				return false
			}

			yz, err := Add(y, z)
			if err != nil {
				return false
			}
			right, err := Add(x, yz)
			if err != nil {
				return false
			}

			return Equal(left, right)
		},
		gen.Int64(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestCompareProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	nans := []Number{
		FromFloat64(math.NaN()),
		FromDecimal(decimal.NewNaN()),
	}

	properties.Property("nan is greater than every number", prop.ForAll(
		func(v int64) bool {
			values := []Number{
				FromInt64(v),
				FromBigInt(new(big.Int).Mul(big.NewInt(v), big.NewInt(math.MaxInt64))),
				FromFloat64(float64(v)),
				FromDecimal(decimal.NewInt64(v, -3)),
				FromRat(big.NewRat(v, 7)),
				FromFloat64(math.Inf(1)),
			}

			for _, nan := range nans {
				for _, x := range values {
					if Compare(nan, x) <= 0 || Compare(x, nan) >= 0 {
						return false
					}
				}

				for _, other := range nans {
					if Compare(nan, other) != 0 {
						return false
					}
				}
			}

			return true
		},
		gen.Int64(),
	))

	properties.Property("double to decimal is exact", prop.ForAll(
		func(f float64) bool {
			n := FromFloat64(f)

			d, err := n.Decimal()
			if err != nil {
				return false
			}

			return Compare(n, FromDecimal(d)) == 0 && d.Float64() == f
		},
		gen.Float64(),
	))

	properties.Property("compare is antisymmetric across kinds", prop.ForAll(
		func(a, b int64) bool {
			x := FromRat(big.NewRat(a, 3))
			y := FromDecimal(decimal.NewInt64(b, -1))

			return Compare(x, y) == -Compare(y, x)
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
