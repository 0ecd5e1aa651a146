package exact

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestPowers(t *testing.T) {
	p, err := Pow10(big.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "1000", p.String())

	p, err = Pow5(big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, "1", p.String())

	p, err = Lsh(big.NewInt(3), big.NewInt(70))
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Lsh(big.NewInt(3), 70), p)

	_, err = Pow10(big.NewInt(MaxExponent + 1))
	require.Error(t, err)
	require.True(t, Error.Has(err))

	_, err = Pow5(big.NewInt(-1))
	require.Error(t, err)

	_, err = Lsh(big.NewInt(1), big.NewInt(-1))
	require.Error(t, err)

	_, err = Exponent(big.NewInt(-MaxExponent - 1))
	require.Error(t, err)

	e, err := Exponent(big.NewInt(-MaxExponent))
	require.NoError(t, err)
	require.Equal(t, -MaxExponent, e)
}

func TestSignedBitLen(t *testing.T) {
	type TC struct {
		x    string
		bits int
	}

	tcs := []TC{
		{x: "0", bits: 0},
		{x: "-1", bits: 0},
		{x: "1", bits: 1},
		{x: "-2", bits: 1},
		{x: "9223372036854775807", bits: 63},
		{x: "-9223372036854775808", bits: 63},
		{x: "18446744073709551615", bits: 64},
		{x: "-18446744073709551616", bits: 64},
		{x: "18446744073709551616", bits: 65},
		{x: "-18446744073709551617", bits: 65},
	}

	for _, tc := range tcs {
		t.Run(tc.x, func(t *testing.T) {
			x, ok := new(big.Int).SetString(tc.x, 10)
			require.True(t, ok)
			require.Equal(t, tc.bits, SignedBitLen(x))
		})
	}
}

func mag(num, den, pow2, pow5 int64) Magnitude {
	return Magnitude{
		Num:  big.NewInt(num),
		Den:  big.NewInt(den),
		Pow2: big.NewInt(pow2),
		Pow5: big.NewInt(pow5),
	}
}

func TestCmp(t *testing.T) {
	type TC struct {
		a, b Magnitude
		want int
	}

	huge := new(big.Int).Lsh(big.NewInt(1), 80)

	tcs := []TC{
		{a: mag(1, 1, 0, 0), b: mag(1, 1, 0, 0), want: 0},
		{a: mag(1, 3, 0, 0), b: mag(3333333333, 1, -10, -10), want: 1},
		{a: mag(1, 1, 1, 1), b: mag(10, 1, 0, 0), want: 0},
		{a: mag(3, 1, -1, 0), b: mag(15, 1, -1, -1), want: 0},
		{a: mag(7, 1, 0, 0), b: mag(1, 1, 3, 0), want: -1},
		{a: mag(1, 1, 1000, 0), b: mag(1, 1, 0, 430), want: 1},
		{a: mag(1, 1, 0, 0), b: mag(1, 1, -1, 0), want: 1},

		// Powers far beyond MaxExponent.
		{a: Magnitude{Num: big.NewInt(1), Pow2: huge}, b: Magnitude{Num: big.NewInt(1), Pow5: huge}, want: -1},
		{a: Magnitude{Num: big.NewInt(3), Pow2: huge}, b: Magnitude{Num: big.NewInt(2), Pow2: huge}, want: 1},
		{a: Magnitude{Num: big.NewInt(1), Pow2: new(big.Int).Neg(huge)}, b: mag(1, 1, 0, 0), want: -1},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			require.Equal(t, tc.want, Cmp(tc.a, tc.b))
			require.Equal(t, -tc.want, Cmp(tc.b, tc.a))
		})
	}
}

// forceLogarithms disables exact alignment above the small operand size for
// the duration of the test.
func forceLogarithms(t *testing.T) {
	t.Helper()

	old := alignBits
	alignBits = 0

	t.Cleanup(func() { alignBits = old })
}

// truncatedPow5 returns 5^p5 truncated to its leading width bits as
// m·2^e, together with (m+1)·2^e.
func truncatedPow5(p5 int64, width int) (lo, hi Magnitude) {
	v := new(big.Int).Exp(big.NewInt(5), big.NewInt(p5), nil)
	e := v.BitLen() - width
	m := new(big.Int).Rsh(v, uint(e))

	lo = Magnitude{Num: m, Pow2: big.NewInt(int64(e))}
	hi = Magnitude{Num: new(big.Int).Add(m, big.NewInt(1)), Pow2: big.NewInt(int64(e))}

	return lo, hi
}

func TestCmpWideMantissa(t *testing.T) {
	// 10^4194305 lies strictly between m·2^e and (m+1)·2^e for a 64 bit m.
	k := int64(MaxExponent + 1)
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(k), nil)
	e := v.BitLen() - 64
	m := new(big.Int).Rsh(v, uint(e))

	d := Magnitude{Num: big.NewInt(1), Pow2: big.NewInt(k), Pow5: big.NewInt(k)}
	lo := Magnitude{Num: m, Pow2: big.NewInt(int64(e))}
	hi := Magnitude{Num: new(big.Int).Add(m, big.NewInt(1)), Pow2: big.NewInt(int64(e))}

	check := func(t *testing.T) {
		require.Equal(t, 1, Cmp(d, lo))
		require.Equal(t, -1, Cmp(lo, d))
		require.Equal(t, -1, Cmp(d, hi))
		require.Equal(t, 1, Cmp(hi, d))
	}

	t.Run("aligned", check)

	t.Run("logarithms", func(t *testing.T) {
		forceLogarithms(t)
		check(t)

		c, ok := cmpLog(d, lo, 128, scaleBits(d, lo))
		require.True(t, ok)
		require.Equal(t, 1, c)

		c, ok = cmpLog(d, hi, 128, scaleBits(d, hi))
		require.True(t, ok)
		require.Equal(t, -1, c)

		_, ok = cmpLog(d, lo, 32, scaleBits(d, lo))
		require.False(t, ok)
	})
}

func TestCmpCloseLogarithms(t *testing.T) {
	forceLogarithms(t)

	n := new(big.Int).Lsh(big.NewInt(1), 200)
	n.Add(n, big.NewInt(12345))

	type TC struct {
		name string
		a, b Magnitude
		want int
	}

	// n + 2^-5000 against n.
	above2 := new(big.Int).Lsh(n, 5000)
	above2.Add(above2, big.NewInt(1))

	// n + 5^-3000 against n.
	above5 := new(big.Int).Mul(n, new(big.Int).Exp(big.NewInt(5), big.NewInt(3000), nil))
	above5.Add(above5, big.NewInt(1))

	// n - 10^-2000 against n.
	below10 := new(big.Int).Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(2000), nil))
	below10.Sub(below10, big.NewInt(1))

	tcs := []TC{
		{name: "pow2", a: Magnitude{Num: above2, Pow2: big.NewInt(-5000)}, b: Magnitude{Num: n}, want: 1},
		{name: "pow5", a: Magnitude{Num: above5, Pow5: big.NewInt(-3000)}, b: Magnitude{Num: n}, want: 1},
		{name: "pow10", a: Magnitude{Num: below10, Pow2: big.NewInt(-2000), Pow5: big.NewInt(-2000)}, b: Magnitude{Num: n}, want: -1},
		{name: "den", a: Magnitude{Num: n, Den: new(big.Int).Add(n, big.NewInt(1)), Pow2: big.NewInt(5000)}, b: Magnitude{Num: big.NewInt(1), Pow2: big.NewInt(5000)}, want: -1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Cmp(tc.a, tc.b))
			require.Equal(t, -tc.want, Cmp(tc.b, tc.a))
			require.Equal(t, 0, Cmp(tc.a, tc.a))
		})
	}
}

func TestLogConstants(t *testing.T) {
	ln2, ln5 := logConstants(64)

	f, _ := ln2.Float64()
	require.InDelta(t, 0.6931471805599453, f, 1e-15)

	f, _ = ln5.Float64()
	require.InDelta(t, 1.6094379124341003, f, 1e-15)

	// Higher precision agrees with the cached lower one.
	hi2, _ := logConstants(512)
	require.Equal(t, 0, new(big.Float).SetPrec(64).Set(hi2).Cmp(ln2))
}

func TestCompare(t *testing.T) {
	nan := Operand{NaN: true}
	posInf := Operand{Inf: true, Sign: 1}
	negInf := Operand{Inf: true, Sign: -1}
	zero := IntOperand(new(big.Int))
	one := IntOperand(big.NewInt(1))
	half := RatOperand(big.NewRat(-1, 2))

	ordered := []Operand{negInf, half, zero, one, posInf, nan}

	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}

			require.Equal(t, want, Compare(ordered[i], ordered[j]), "%d vs %d", i, j)
		}
	}
}

func TestCmpProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("matches rational comparison", prop.ForAll(
		func(an, ad, bn, bd int64, a2, a5, b2, b5 int) bool {
			a := mag(an, ad, int64(a2), int64(a5))
			b := mag(bn, bd, int64(b2), int64(b5))

			return Cmp(a, b) == rat(a).Cmp(rat(b))
		},
		gen.Int64Range(1, 1<<40),
		gen.Int64Range(1, 1<<20),
		gen.Int64Range(1, 1<<40),
		gen.Int64Range(1, 1<<20),
		gen.IntRange(-64, 64),
		gen.IntRange(-20, 20),
		gen.IntRange(-64, 64),
		gen.IntRange(-20, 20),
	))

	properties.TestingRun(t)
}

func TestCmpLargeGapProperties(t *testing.T) {
	forceLogarithms(t)

	properties := gopter.NewProperties(nil)

	properties.Property("matches rational comparison across large gaps", prop.ForAll(
		func(an, bn int64, a2, a5, b2, b5 int) bool {
			a := mag(an, 1, int64(a2), int64(a5))
			b := mag(bn, 1, int64(b2), int64(b5))

			return Cmp(a, b) == rat(a).Cmp(rat(b))
		},
		gen.Int64Range(1, 1<<62),
		gen.Int64Range(1, 1<<62),
		gen.IntRange(-6000, 6000),
		gen.IntRange(-2500, 2500),
		gen.IntRange(-6000, 6000),
		gen.IntRange(-2500, 2500),
	))

	properties.Property("brackets truncated powers of five", prop.ForAll(
		func(p5 int64, width int) bool {
			lo, hi := truncatedPow5(p5, width)
			v := Magnitude{Num: big.NewInt(1), Pow5: big.NewInt(p5)}

			return Cmp(v, lo) == 1 && Cmp(lo, v) == -1 && Cmp(v, hi) == -1 && Cmp(hi, v) == 1
		},
		gen.Int64Range(2000, 8000),
		gen.IntRange(54, 400),
	))

	properties.TestingRun(t)
}

func rat(m Magnitude) *big.Rat {
	r := new(big.Rat).SetFrac(m.Num, m.den())

	p2 := new(big.Int).Lsh(big.NewInt(1), uint(abs(m.Pow2.Int64())))
	p5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(abs(m.Pow5.Int64())), nil)

	if m.Pow2.Sign() >= 0 {
		r.Mul(r, new(big.Rat).SetInt(p2))
	} else {
		r.Quo(r, new(big.Rat).SetInt(p2))
	}

	if m.Pow5.Sign() >= 0 {
		r.Mul(r, new(big.Rat).SetInt(p5))
	} else {
		r.Quo(r, new(big.Rat).SetInt(p5))
	}

	return r
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}
