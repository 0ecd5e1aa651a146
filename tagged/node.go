package tagged

import (
	"math"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/calebcase/cbornum/bignum"
	"github.com/calebcase/cbornum/control"
)

// Node is a read-only view of a decoded CBOR data item.
type Node interface {
	// Tags returns the tag numbers wrapping the item, outermost first.
	Tags() []uint64

	// Bytes returns the content of a byte string.
	Bytes() ([]byte, bool)

	// Len returns the number of elements of an array.
	Len() (int, bool)

	// Index returns element i of an array.
	Index(i int) Node

	// Integer returns the value of an integral item: a CBOR integer or a
	// bignum.
	Integer() (*big.Int, bool)

	// Float returns the value of a CBOR floating point item.
	Float() (float64, bool)
}

// DecMode is the CBOR decoding mode used for tagged numbers.
var DecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		IntDec:           cbor.IntDecConvertNone,
		MaxArrayElements: 20_000_000,
		MaxMapPairs:      20_000_000,
		MaxNestedLevels:  math.MaxInt16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

type item struct {
	tags    []uint64
	head    control.Head
	content []byte
	elems   []*item
}

var _ Node = (*item)(nil)

// Parse reads exactly one CBOR data item.
func Parse(data []byte) (_ Node, err error) {
	defer Error.WrapP(&err)

	var raw cbor.RawMessage
	if err := DecMode.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return parseItem(raw)
}

func parseItem(raw []byte) (*item, error) {
	it := &item{}

	for {
		h, err := control.ReadHead(raw)
		if err != nil {
			return nil, err
		}

		if h.Type != control.Tag {
			it.head = h
			it.content = raw

			break
		}

		it.tags = append(it.tags, h.Argument)
		raw = raw[h.Size:]
	}

	if it.head.Type == control.Array {
		var elems []cbor.RawMessage
		if err := DecMode.Unmarshal(it.content, &elems); err != nil {
			return nil, err
		}

		it.elems = make([]*item, 0, len(elems))
		for _, e := range elems {
			child, err := parseItem(e)
			if err != nil {
				return nil, err
			}

			it.elems = append(it.elems, child)
		}
	}

	return it, nil
}

func (it *item) Tags() []uint64 {
	return append([]uint64(nil), it.tags...)
}

func (it *item) Bytes() ([]byte, bool) {
	if it.head.Type != control.ByteString {
		return nil, false
	}

	data, err := bignum.Content(it.content)
	if err != nil {
		return nil, false
	}

	return data, true
}

func (it *item) Len() (int, bool) {
	if it.head.Type != control.Array {
		return 0, false
	}

	return len(it.elems), true
}

func (it *item) Index(i int) Node {
	return it.elems[i]
}

func (it *item) Integer() (*big.Int, bool) {
	switch len(it.tags) {
	case 0:
		switch it.head.Type {
		case control.Unsigned:
			return new(big.Int).SetUint64(it.head.Argument), true
		case control.Negative:
			x := new(big.Int).SetUint64(it.head.Argument)

			return x.Neg(x).Sub(x, big.NewInt(1)), true
		}
	case 1:
		if it.tags[0] != TagPositiveBignum && it.tags[0] != TagNegativeBignum {
			return nil, false
		}

		data, ok := it.Bytes()
		if !ok {
			return nil, false
		}

		return bignum.BigInt(data, it.tags[0] == TagNegativeBignum), true
	}

	return nil, false
}

func (it *item) Float() (float64, bool) {
	if len(it.tags) != 0 || it.head.Type != control.SimpleFloat {
		return 0, false
	}

	switch it.head.Info {
	case control.InfoUint16, control.InfoUint32, control.InfoUint64:
	default:
		return 0, false
	}

	var f float64
	if err := DecMode.Unmarshal(it.content, &f); err != nil {
		return 0, false
	}

	return f, true
}
