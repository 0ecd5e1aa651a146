package cbornum

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/calebcase/cbornum/number"
	"github.com/calebcase/cbornum/tagged"
)

// Decoder reads successive CBOR data items from a stream and converts each
// one to a number.
type Decoder struct {
	dec      *cbor.Decoder
	consumed int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec: tagged.DecMode.NewDecoder(r),
	}
}

// Decode reads the next data item. It returns io.EOF when the stream ends
// between items.
func (d *Decoder) Decode() (n number.Number, err error) {
	var raw cbor.RawMessage

	err = d.dec.Decode(&raw)
	if errors.Is(err, io.EOF) {
		return number.Number{}, io.EOF
	}
	if err != nil {
		return number.Number{}, Error.Wrap(err)
	}

	d.consumed = d.dec.NumBytesRead()

	return DecodeNumber(raw)
}

// Consumed returns the number of bytes of the stream decoded so far.
func (d *Decoder) Consumed() int {
	return d.consumed
}

// DecodeNumber converts exactly one CBOR data item to a number.
func DecodeNumber(data []byte) (_ number.Number, err error) {
	defer Error.WrapP(&err)

	node, err := tagged.Parse(data)
	if err != nil {
		return number.Number{}, err
	}

	return tagged.Number(node)
}
