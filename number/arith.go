package number

import (
	"math"
	"math/big"

	"github.com/calebcase/oops"

	"github.com/calebcase/cbornum/bigfloat"
	"github.com/calebcase/cbornum/decimal"
)

// promote converts n to kind k without losing information. k must not rank
// below n's kind.
func promote(n Number, k Kind) (Number, error) {
	if n.kind == k {
		return n, nil
	}

	switch k {
	case BigInteger:
		x, _ := n.BigInt()

		return Number{kind: BigInteger, bi: x}, nil
	case BigBinaryFloat:
		f, err := n.BinaryFloat()
		if err != nil {
			return Number{}, err
		}

		return FromBinaryFloat(f), nil
	case BigDecimal:
		d, err := n.Decimal()
		if err != nil {
			return Number{}, err
		}

		return FromDecimal(d), nil
	case BigRational:
		r, err := n.Rat()
		if err != nil {
			return Number{}, err
		}

		return Number{kind: BigRational, r: r}, nil
	}

	return Number{}, Error.New("cannot promote %s to %s", n.kind, k)
}

// promotePair converts a and b to the target kind of the higher ranked of
// the two.
func promotePair(a, b Number) (Number, Number, error) {
	r := rank[a.kind]
	if rank[b.kind] > r {
		r = rank[b.kind]
	}

	k := target[r]

	pa, err := promote(a, k)
	if err != nil {
		return Number{}, Number{}, err
	}

	pb, err := promote(b, k)
	if err != nil {
		return Number{}, Number{}, err
	}

	return pa, pb, nil
}

// Add returns a + b. Two FixedIntegers add in 64 bits unless the result would
// overflow, in which case the sum is a BigInteger. Otherwise both operands
// are promoted to the wider kind and added exactly.
func Add(a, b Number) (_ Number, err error) {
	defer Error.WrapP(&err)

	if a.kind == FixedInteger && b.kind == FixedInteger {
		x, y := a.i, b.i
		if (x < 0 && y < math.MinInt64-x) || (x > 0 && y > math.MaxInt64-x) {
			return FromBigInt(new(big.Int).Add(big.NewInt(x), big.NewInt(y))), nil
		}

		return FromInt64(x + y), nil
	}

	pa, pb, err := promotePair(a, b)
	if err != nil {
		return Number{}, err
	}

	switch pa.kind {
	case BigInteger:
		return Number{kind: BigInteger, bi: new(big.Int).Add(pa.bi, pb.bi)}, nil
	case BigBinaryFloat:
		f, err := pa.bf.Add(pb.bf)
		if err != nil {
			return Number{}, err
		}

		return FromBinaryFloat(f), nil
	case BigDecimal:
		d, err := pa.d.Add(pb.d)
		if err != nil {
			return Number{}, err
		}

		return FromDecimal(d), nil
	case BigRational:
		return Number{kind: BigRational, r: new(big.Rat).Add(pa.r, pb.r)}, nil
	}

	return Number{}, oops.Trace(Error.New("unexpected promotion to %s", pa.kind))
}

// Subtract returns a - b with the same promotion rules as Add.
func Subtract(a, b Number) (_ Number, err error) {
	defer Error.WrapP(&err)

	if a.kind == FixedInteger && b.kind == FixedInteger {
		x, y := a.i, b.i
		if (y < 0 && math.MaxInt64+y < x) || (y > 0 && math.MinInt64+y > x) {
			return FromBigInt(new(big.Int).Sub(big.NewInt(x), big.NewInt(y))), nil
		}

		return FromInt64(x - y), nil
	}

	pa, pb, err := promotePair(a, b)
	if err != nil {
		return Number{}, err
	}

	switch pa.kind {
	case BigInteger:
		return Number{kind: BigInteger, bi: new(big.Int).Sub(pa.bi, pb.bi)}, nil
	case BigBinaryFloat:
		f, err := pa.bf.Sub(pb.bf)
		if err != nil {
			return Number{}, err
		}

		return FromBinaryFloat(f), nil
	case BigDecimal:
		d, err := pa.d.Sub(pb.d)
		if err != nil {
			return Number{}, err
		}

		return FromDecimal(d), nil
	case BigRational:
		return Number{kind: BigRational, r: new(big.Rat).Sub(pa.r, pb.r)}, nil
	}

	return Number{}, oops.Trace(Error.New("unexpected promotion to %s", pa.kind))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func cmpFloat64(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// Compare returns -1, 0 or +1 as a is less than, equal to or greater than b.
// NaN is greater than every other value and equal to NaN. Values of different
// kinds are compared exactly; no operand is rounded.
func Compare(a, b Number) int {
	if a.kind == b.kind {
		switch a.kind {
		case FixedInteger:
			return cmpInt64(a.i, b.i)
		case BigInteger:
			return a.bi.Cmp(b.bi)
		case BinaryDouble:
			return cmpFloat64(a.f, b.f)
		case BigDecimal:
			return a.d.Cmp(b.d)
		case BigBinaryFloat:
			return a.bf.Cmp(b.bf)
		case BigRational:
			return a.r.Cmp(b.r)
		}

		panic(Error.New("unknown kind: %s", a.kind))
	}

	sa, sb := a.Sign(), b.Sign()
	switch {
	case sa == NotANumber && sb == NotANumber:
		return 0
	case sa == NotANumber:
		return 1
	case sb == NotANumber:
		return -1
	case sa != sb:
		if sa < sb {
			return -1
		}

		return 1
	case sa == Zero:
		return 0
	}

	if rank[a.kind] < rank[b.kind] {
		return -compareRanked(b, a)
	}

	return compareRanked(a, b)
}

// compareRanked compares hi against lo where lo does not rank above hi.
func compareRanked(hi, lo Number) int {
	switch hi.kind {
	case BigRational:
		switch lo.kind {
		case BigDecimal:
			return -decimal.CmpRat(lo.d, hi.r)
		case BigBinaryFloat, BinaryDouble:
			f, _ := lo.BinaryFloat()

			return -bigfloat.CmpRat(f, hi.r)
		}

		x, _ := lo.BigInt()

		return hi.r.Cmp(new(big.Rat).SetInt(x))
	case BigDecimal:
		switch lo.kind {
		case BigBinaryFloat, BinaryDouble:
			f, _ := lo.BinaryFloat()

			return decimal.CmpBinary(hi.d, f)
		}

		x, _ := lo.BigInt()

		return hi.d.Cmp(decimal.FromBigInt(x))
	case BigBinaryFloat, BinaryDouble:
		f, _ := hi.BinaryFloat()
		g, _ := lo.BinaryFloat()

		return f.Cmp(g)
	}

	x, _ := hi.BigInt()
	y, _ := lo.BigInt()

	return x.Cmp(y)
}
