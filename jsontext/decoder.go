package jsontext

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 1000

// none marks the absence of a pending lookahead character.
const none rune = -2

// Options configures a Decoder.
type Options struct {
	// NoDuplicates rejects objects that repeat a member name. Otherwise
	// the last value wins.
	NoDuplicates bool

	// AllowComments skips "//" and "#" line comments and "/* */" block
	// comments wherever whitespace is allowed.
	AllowComments bool

	// ReplaceSurrogates substitutes U+FFFD for unpaired surrogate escapes
	// in strings instead of failing.
	ReplaceSurrogates bool

	// PreserveNegativeZero is passed to ParseNumber.
	PreserveNegativeZero bool

	// MaxDepth limits the nesting of arrays and objects.
	MaxDepth int
}

// SyntaxError describes malformed input. Offset counts scalar values read
// before the error was detected. Container is the opening character of the
// innermost open array or object, or zero at the top level, and Index is the
// number of elements or members completed in it.
type SyntaxError struct {
	Offset    int64
	Msg       string
	Container rune
	Index     int
	Err       error
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	switch e.Container {
	case '[':
		msg = fmt.Sprintf("%s in array at index %d", msg, e.Index)
	case '{':
		msg = fmt.Sprintf("%s in object at member %d", msg, e.Index)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s (char. %d): %v", msg, e.Offset, e.Err)
	}

	return fmt.Sprintf("%s (char. %d)", msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Decoder reads one JSON value from a Source. Objects decode to
// map[string]any, arrays to []any, numbers to number.Number and the
// literals to bool and nil.
type Decoder struct {
	src    Source
	opts   Options
	offset int64
	stack  Stack
}

// NewDecoder returns a Decoder reading from src. It panics if src is nil.
func NewDecoder(src Source, opts Options) *Decoder {
	if src == nil {
		panic(Error.New("nil source"))
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Decoder{
		src:  src,
		opts: opts,
	}
}

// Offset returns the number of scalar values read so far.
func (d *Decoder) Offset() int64 {
	return d.offset
}

func (d *Decoder) syntaxError(format string, args ...any) error {
	return d.causeError(fmt.Sprintf(format, args...), nil)
}

func (d *Decoder) causeError(msg string, err error) error {
	se := &SyntaxError{
		Offset: d.offset,
		Msg:    msg,
		Err:    err,
	}

	if top := d.stack.Top(); top != nil {
		se.Container = top.Container
		se.Index = top.Count
	}

	return Error.Wrap(se)
}

// separatorError reports a missing ',' or closing character after an
// element of the innermost container.
func (d *Decoder) separatorError() error {
	closing := ']'
	if d.stack.Top().Container == '{' {
		closing = '}'
	}

	return d.syntaxError("expected a ',' or '%c'", closing)
}

func (d *Decoder) next() (rune, error) {
	c, err := d.src.Next()
	if err != nil {
		return EOF, d.causeError("invalid text", err)
	}

	if c != EOF {
		d.offset++
	}

	return c, nil
}

// Decode reads a single value. Anything but whitespace or comments after
// the value is an error.
func (d *Decoder) Decode() (v any, err error) {
	c, err := d.nextClean(none)
	if err != nil {
		return nil, err
	}

	v, c, err = d.value(c)
	if err != nil {
		return nil, err
	}

	if c != EOF {
		return nil, d.syntaxError("unexpected data after value: %q", c)
	}

	return v, nil
}

func isSpace(c rune) bool {
	return c == 0x20 || c == 0x0a || c == 0x0d || c == 0x09
}

// nextClean returns the first character, starting with last unless it is
// none, that is not whitespace or part of a comment.
func (d *Decoder) nextClean(last rune) (c rune, err error) {
	for {
		if last != none {
			c, last = last, none
		} else {
			c, err = d.next()
			if err != nil {
				return EOF, err
			}
		}

		switch {
		case isSpace(c):
			continue
		case c == '/' || c == '#':
			if !d.opts.AllowComments {
				return EOF, d.syntaxError("comments not allowed")
			}

			err = d.comment(c)
			if err != nil {
				return EOF, err
			}
		default:
			return c, nil
		}
	}
}

// comment skips a comment whose first character has been read.
func (d *Decoder) comment(first rune) (err error) {
	c := first
	if first == '/' {
		c, err = d.next()
		if err != nil {
			return err
		}

		if c == '#' {
			return d.syntaxError("invalid comment")
		}
	}

	switch c {
	case '#', '/':
		for c != '\n' && c != EOF {
			c, err = d.next()
			if err != nil {
				return err
			}
		}

		return nil
	case '*':
		star := false
		for {
			c, err = d.next()
			if err != nil {
				return err
			}

			switch {
			case c == EOF:
				return d.syntaxError("unclosed comment")
			case star && c == '/':
				return nil
			}

			star = c == '*'
		}
	}

	return d.syntaxError("invalid comment")
}

// value reads the value that starts with c and returns it along with the
// next significant character after it.
func (d *Decoder) value(c rune) (v any, next rune, err error) {
	switch {
	case c == EOF:
		return nil, EOF, d.syntaxError("unexpected end of data")

	case c == '"':
		v, err = d.str()
	case c == '{':
		v, err = d.object()
	case c == '[':
		v, err = d.array()
	case c == 't':
		v, err = true, d.literal("rue")
	case c == 'f':
		v, err = false, d.literal("alse")
	case c == 'n':
		v, err = nil, d.literal("ull")

	case c == '-' || (c >= '0' && c <= '9'):
		return d.number(c)

	default:
		return nil, EOF, d.syntaxError("value can't be parsed")
	}

	if err != nil {
		return nil, EOF, err
	}

	next, err = d.nextClean(none)
	if err != nil {
		return nil, EOF, err
	}

	return v, next, nil
}

func (d *Decoder) literal(rest string) error {
	for _, want := range rest {
		c, err := d.next()
		if err != nil {
			return err
		}

		if c != want {
			return d.syntaxError("value can't be parsed")
		}
	}

	return nil
}

// number accumulates the characters that may appear in a number and lets
// ParseNumber judge the grammar.
func (d *Decoder) number(c rune) (v any, next rune, err error) {
	sb := strings.Builder{}

	for c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
		sb.WriteRune(c)

		c, err = d.next()
		if err != nil {
			return nil, EOF, err
		}
	}

	n, ok := ParseNumber(sb.String(), NumberOptions{
		PreserveNegativeZero: d.opts.PreserveNegativeZero,
	})
	if !ok {
		return nil, EOF, d.syntaxError("JSON number can't be parsed: %q", sb.String())
	}

	next, err = d.nextClean(c)
	if err != nil {
		return nil, EOF, err
	}

	return n, next, nil
}

// escape reads the character after a backslash.
func (d *Decoder) escape() (rune, error) {
	c, err := d.next()
	if err != nil {
		return EOF, err
	}

	switch c {
	case '"', '\\', '/':
		return c, nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		var r rune

		for i := 0; i < 4; i++ {
			h, err := d.next()
			if err != nil {
				return EOF, err
			}

			switch {
			case h >= '0' && h <= '9':
				r = r<<4 | (h - '0')
			case h >= 'a' && h <= 'f':
				r = r<<4 | (h - 'a' + 10)
			case h >= 'A' && h <= 'F':
				r = r<<4 | (h - 'A' + 10)
			default:
				return EOF, d.syntaxError("invalid unicode escape")
			}
		}

		return r, nil
	}

	return EOF, d.syntaxError("invalid escaped character")
}

// str reads the rest of a string whose opening quote has been read.
// Surrogates can only arrive through escapes: a high surrogate escape must
// be followed directly by a low surrogate escape.
func (d *Decoder) str() (string, error) {
	sb := strings.Builder{}
	high := none

	for {
		c, err := d.next()
		if err != nil {
			return "", err
		}

		switch {
		case c == EOF:
			return "", d.syntaxError("unterminated string")
		case c < 0x20:
			return "", d.syntaxError("control character in string")
		}

		escaped := c == '\\'
		if escaped {
			c, err = d.escape()
			if err != nil {
				return "", err
			}
		}

		if high != none {
			if escaped && c >= 0xdc00 && c <= 0xdfff {
				sb.WriteRune(utf16.DecodeRune(high, c))
				high = none

				continue
			}

			if !d.opts.ReplaceSurrogates {
				return "", d.causeError("invalid string", ErrUnpairedSurrogate)
			}

			sb.WriteRune(utf8.RuneError)
			high = none
		}

		if c == '"' && !escaped {
			return sb.String(), nil
		}

		if escaped && utf16.IsSurrogate(c) {
			if c < 0xdc00 {
				high = c

				continue
			}

			if !d.opts.ReplaceSurrogates {
				return "", d.causeError("invalid string", ErrUnpairedSurrogate)
			}

			c = utf8.RuneError
		}

		sb.WriteRune(c)
	}
}

func (d *Decoder) push(container rune) error {
	if d.stack.Depth() >= d.opts.MaxDepth {
		return d.syntaxError("maximum nesting depth %d exceeded", d.opts.MaxDepth)
	}

	f := &Frame{Container: container}
	if container == '{' && d.opts.NoDuplicates {
		f.Keys = map[string]struct{}{}
	}

	d.stack.Push(f)

	return nil
}

// object reads the rest of an object whose '{' has been read.
func (d *Decoder) object() (_ map[string]any, err error) {
	err = d.push('{')
	if err != nil {
		return nil, err
	}

	m := map[string]any{}

	c, err := d.nextClean(none)
	if err != nil {
		return nil, err
	}

	if c == '}' {
		return m, d.stack.Pop()
	}

	for {
		switch c {
		case EOF:
			return nil, d.syntaxError("an object must end with '}'")
		case '}':
			return nil, d.syntaxError("trailing comma")
		case '"':
		default:
			return nil, d.syntaxError("expected a string as a key")
		}

		key, err := d.str()
		if err != nil {
			return nil, err
		}

		top := d.stack.Top()
		if top.Keys != nil {
			if _, ok := top.Keys[key]; ok {
				return nil, d.syntaxError("key already exists: %q", key)
			}

			top.Keys[key] = struct{}{}
		}

		c, err = d.nextClean(none)
		if err != nil {
			return nil, err
		}

		if c != ':' {
			return nil, d.syntaxError("expected a ':' after a key")
		}

		c, err = d.nextClean(none)
		if err != nil {
			return nil, err
		}

		m[key], c, err = d.value(c)
		if err != nil {
			return nil, err
		}

		d.stack.Count()

		switch c {
		case ',':
		case '}':
			return m, d.stack.Pop()
		default:
			return nil, d.separatorError()
		}

		c, err = d.nextClean(none)
		if err != nil {
			return nil, err
		}
	}
}

// array reads the rest of an array whose '[' has been read.
func (d *Decoder) array() (_ []any, err error) {
	err = d.push('[')
	if err != nil {
		return nil, err
	}

	a := []any{}
	seenComma := false

	for {
		c, err := d.nextClean(none)
		if err != nil {
			return nil, err
		}

		switch c {
		case ',':
			return nil, d.syntaxError("empty array element")
		case ']':
			if seenComma {
				return nil, d.syntaxError("trailing comma")
			}

			return a, d.stack.Pop()
		}

		var v any
		v, c, err = d.value(c)
		if err != nil {
			return nil, err
		}

		a = append(a, v)
		d.stack.Count()

		switch c {
		case ',':
			seenComma = true
		case ']':
			return a, d.stack.Pop()
		default:
			return nil, d.separatorError()
		}
	}
}
