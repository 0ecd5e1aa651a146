// Package bignum converts CBOR bignums (tags 2 and 3) to and from integers.
//
// A bignum is a byte string holding a big-endian unsigned magnitude n. Under
// tag 2 the value is n; under tag 3 the value is -1 - n.
package bignum

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/errs"

	"github.com/calebcase/cbornum/control"
	"github.com/calebcase/cbornum/number"
)

// Error is the error class for this package.
var Error = errs.Class("bignum")

// Tag numbers.
const (
	TagPositive = 2
	TagNegative = 3
)

// fastBytes is the longest magnitude decoded directly into an int64.
const fastBytes = 7

// Block is the content of a bignum: the magnitude bytes and the sign selected
// by the tag.
type Block struct {
	Data     []byte
	Negative bool
}

// Tag returns the tag number that carries b's sign.
func (b Block) Tag() uint64 {
	if b.Negative {
		return TagNegative
	}

	return TagPositive
}

// Number decodes b.
func (b Block) Number() number.Number {
	return Decode(b.Data, b.Negative)
}

// Decode converts magnitude bytes to a Number. Results that fit in an int64
// are FixedInteger; larger ones are BigInteger.
func Decode(data []byte, negative bool) number.Number {
	if len(data) <= fastBytes {
		var x int64
		for _, b := range data {
			x = x<<8 | int64(b)
		}

		if negative {
			x = -x - 1
		}

		return number.FromInt64(x)
	}

	return number.FromInteger(BigInt(data, negative))
}

// BigInt converts magnitude bytes to an integer.
//
// The bytes are reversed into little-endian two's complement. When negative
// every byte is complemented, which turns n into -1 - n. If the top input bit
// is set a sentinel byte keeps the sign of the two's complement form from
// flipping.
func BigInt(data []byte, negative bool) *big.Int {
	le := make([]byte, 0, len(data)+1)
	for i := len(data) - 1; i >= 0; i-- {
		b := data[i]
		if negative {
			b = ^b
		}

		le = append(le, b)
	}

	if len(data) > 0 && data[0]&0x80 != 0 {
		if negative {
			le = append(le, 0xff)
		} else {
			le = append(le, 0x00)
		}
	} else if len(data) == 0 && negative {
		le = append(le, 0xff)
	}

	return fromTwosComplement(le)
}

// fromTwosComplement reads a little-endian two's complement integer.
func fromTwosComplement(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}

	x := new(big.Int).SetBytes(be)
	if len(be) > 0 && be[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(be))))
	}

	return x
}

// Encode returns the bignum form of x.
func Encode(x *big.Int) Block {
	if x.Sign() < 0 {
		n := new(big.Int).Neg(x)
		n.Sub(n, big.NewInt(1))

		return Block{Data: n.Bytes(), Negative: true}
	}

	return Block{Data: x.Bytes()}
}

// MarshalCBOR implements cbor.Marshaler.
func (b Block) MarshalCBOR() (data []byte, err error) {
	defer Error.WrapP(&err)

	// Note: big.Int encodes zero as an empty byte array. An empty byte
	// string is a valid bignum but nil would be written as null.
	content := b.Data
	if content == nil {
		content = []byte{}
	}

	return cbor.Marshal(cbor.Tag{
		Number:  b.Tag(),
		Content: content,
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (b *Block) UnmarshalCBOR(data []byte) (err error) {
	defer Error.WrapP(&err)

	var raw cbor.RawTag
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Number {
	case TagPositive:
		b.Negative = false
	case TagNegative:
		b.Negative = true
	default:
		return Error.New("not a bignum tag: %d", raw.Number)
	}

	content, err := Content(raw.Content)
	if err != nil {
		return err
	}

	b.Data = content

	return nil
}

// Content returns the bytes of an encoded byte string. Any other item is a
// structural error.
func Content(item []byte) (_ []byte, err error) {
	defer Error.WrapP(&err)

	h, err := control.ReadHead(item)
	if err != nil {
		return nil, err
	}

	if h.Type != control.ByteString {
		return nil, Error.New("bignum content must be a byte string, got %s", h.Type)
	}

	var data []byte
	if err := cbor.Unmarshal(item, &data); err != nil {
		return nil, err
	}

	if data == nil {
		data = []byte{}
	}

	return data, nil
}
