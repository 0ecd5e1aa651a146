package number

import "fmt"

// Kind identifies which representation a Number holds.
type Kind uint8

// Kinds
const (
	FixedInteger Kind = iota
	BigInteger
	BinaryDouble
	BigDecimal
	BigBinaryFloat
	BigRational
)

// Kinds is every kind in declaration order.
var Kinds = []Kind{
	FixedInteger,
	BigInteger,
	BinaryDouble,
	BigDecimal,
	BigBinaryFloat,
	BigRational,
}

func (k Kind) String() string {
	switch k {
	case FixedInteger:
		return "FixedInteger"
	case BigInteger:
		return "BigInteger"
	case BinaryDouble:
		return "BinaryDouble"
	case BigDecimal:
		return "BigDecimal"
	case BigBinaryFloat:
		return "BigBinaryFloat"
	case BigRational:
		return "BigRational"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// rank orders kinds for promotion. Kinds with equal rank promote to the
// same target.
var rank = [...]int{
	FixedInteger:   0,
	BigInteger:     0,
	BinaryDouble:   1,
	BigBinaryFloat: 1,
	BigDecimal:     2,
	BigRational:    3,
}

// target is the kind both operands are promoted to for a given rank.
var target = [...]Kind{
	0: BigInteger,
	1: BigBinaryFloat,
	2: BigDecimal,
	3: BigRational,
}

// Sign is the sign of a Number, with a distinct value for NaN.
type Sign int8

// Signs
const (
	Negative   Sign = -1
	Zero       Sign = 0
	Positive   Sign = 1
	NotANumber Sign = 2
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "Negative"
	case Zero:
		return "Zero"
	case Positive:
		return "Positive"
	case NotANumber:
		return "NotANumber"
	}

	return fmt.Sprintf("Sign(%d)", int8(s))
}
