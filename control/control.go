package control

import (
	"encoding/binary"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("control")

// ErrShort is returned when the data ends inside a head.
var ErrShort = Error.New("truncated head")

// Additional information values with special meaning.
const (
	InfoUint8      = 24
	InfoUint16     = 25
	InfoUint32     = 26
	InfoUint64     = 27
	InfoIndefinite = 31
)

// Parse returns the major type and additional information of an initial
// byte.
func Parse(b byte) (t Type, info uint8, err error) {
	t, ok := Types.Match(b)
	if !ok {
		return Unknown, 0, Error.New("invalid initial byte: %08b", b)
	}

	info = b & infoMask
	if info >= 28 && info <= 30 {
		return t, info, Error.New("reserved additional information: %08b", b)
	}

	if info == InfoIndefinite {
		switch t {
		case Unsigned, Negative, Tag:
			return t, info, Error.New("indefinite length not allowed for %s: %08b", t, b)
		}
	}

	return t, info, nil
}

// Head is the decoded head of a CBOR data item.
type Head struct {
	Type Type
	Info uint8

	// Argument is the value of the head: the integer for uint and nint, the
	// length for strings, arrays and maps, the tag number for tags and the
	// raw bits for simple values and floats.
	Argument uint64

	// Size is the number of bytes the head occupies.
	Size int

	// Indefinite is true for indefinite length strings and containers and
	// for the break marker.
	Indefinite bool
}

// ReadHead decodes the head at the start of data.
func ReadHead(data []byte) (h Head, err error) {
	defer Error.WrapP(&err)

	if len(data) == 0 {
		return h, oops.Trace(ErrShort)
	}

	h.Type, h.Info, err = Parse(data[0])
	if err != nil {
		return h, err
	}

	h.Size = 1

	switch {
	case h.Info < InfoUint8:
		h.Argument = uint64(h.Info)
	case h.Info == InfoIndefinite:
		h.Indefinite = true
	default:
		n := 1 << (h.Info - InfoUint8)
		if len(data) < 1+n {
			return h, oops.Trace(ErrShort)
		}

		arg := data[1 : 1+n]
		switch n {
		case 1:
			h.Argument = uint64(arg[0])
		case 2:
			h.Argument = uint64(binary.BigEndian.Uint16(arg))
		case 4:
			h.Argument = uint64(binary.BigEndian.Uint32(arg))
		case 8:
			h.Argument = binary.BigEndian.Uint64(arg)
		}

		h.Size += n
	}

	return h, nil
}
