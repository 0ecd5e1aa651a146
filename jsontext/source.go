package jsontext

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/calebcase/oops"
)

// EOF is returned by Source.Next at the end of the input.
const EOF rune = -1

var (
	// ErrInvalidUTF8 is returned for malformed or truncated UTF-8.
	ErrInvalidUTF8 = Error.New("invalid UTF-8")

	// ErrUnpairedSurrogate is returned for a surrogate code unit or escape
	// that is not part of a high/low pair.
	ErrUnpairedSurrogate = Error.New("unpaired surrogate code point")
)

// Source yields one Unicode scalar value at a time.
type Source interface {
	// Next returns the next scalar value or EOF. End of input in the
	// middle of a scalar is an error, not EOF.
	Next() (rune, error)
}

type unitSource struct {
	units []uint16
	pos   int
}

// NewUnitSource reads scalar values from UTF-16 code units. A high surrogate
// immediately followed by a low surrogate is combined; any other surrogate
// is an error.
func NewUnitSource(units []uint16) Source {
	return &unitSource{units: units}
}

func (s *unitSource) Next() (rune, error) {
	if s.pos >= len(s.units) {
		return EOF, nil
	}

	c := rune(s.units[s.pos])
	if utf16.IsSurrogate(c) {
		if c < 0xdc00 && s.pos+1 < len(s.units) {
			r := utf16.DecodeRune(c, rune(s.units[s.pos+1]))
			if r != 0xfffd {
				s.pos += 2

				return r, nil
			}
		}

		return EOF, oops.Trace(ErrUnpairedSurrogate)
	}

	s.pos++

	return c, nil
}

type readerSource struct {
	r io.ByteReader
}

// NewReaderSource decodes UTF-8 from r. Overlong forms, surrogates, values
// above U+10FFFF and sequences truncated by the end of r are errors.
func NewReaderSource(r io.Reader) Source {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &readerSource{r: br}
}

// NewStringSource decodes the UTF-8 text s.
func NewStringSource(s string) Source {
	return NewReaderSource(strings.NewReader(s))
}

func (s *readerSource) readByte() (b byte, eof bool, err error) {
	b, err = s.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, Error.Wrap(err)
	}

	return b, false, nil
}

func (s *readerSource) Next() (rune, error) {
	b, eof, err := s.readByte()
	if err != nil {
		return EOF, err
	}
	if eof {
		return EOF, nil
	}

	var cp rune
	var need int

	// Bounds of the first continuation byte. The rest are 80..BF.
	lower, upper := byte(0x80), byte(0xbf)

	switch {
	case b < 0x80:
		return rune(b), nil
	case b >= 0xc2 && b <= 0xdf:
		need = 1
		cp = rune(b&0x1f) << 6
	case b >= 0xe0 && b <= 0xef:
		need = 2
		cp = rune(b&0x0f) << 12
		if b == 0xe0 {
			lower = 0xa0
		}
		if b == 0xed {
			upper = 0x9f
		}
	case b >= 0xf0 && b <= 0xf4:
		need = 3
		cp = rune(b&0x07) << 18
		if b == 0xf0 {
			lower = 0x90
		}
		if b == 0xf4 {
			upper = 0x8f
		}
	default:
		return EOF, oops.Trace(ErrInvalidUTF8)
	}

	for seen := 1; seen <= need; seen++ {
		b, eof, err = s.readByte()
		if err != nil {
			return EOF, err
		}
		if eof || b < lower || b > upper {
			return EOF, oops.Trace(ErrInvalidUTF8)
		}

		lower, upper = 0x80, 0xbf
		cp |= rune(b&0x3f) << (6 * (need - seen))
	}

	return cp, nil
}
