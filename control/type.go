package control

// Type is a CBOR major type. The top three bits of an initial byte select
// the type; Mask covers the five additional information bits.
type Type struct {
	Prefix byte
	Mask   byte
	Abbr   string
}

// Match returns true if this major type matches the given initial byte.
func (t Type) Match(b byte) bool {
	return b&^t.Mask == t.Prefix
}

func (t Type) String() string {
	return t.Abbr
}

type types []Type

func (ts types) Match(b byte) (t Type, ok bool) {
	for _, t := range ts {
		if t.Match(b) {
			return t, true
		}
	}

	return t, false
}

const infoMask = 0b_0001_1111

var (
	Unknown     = Type{}
	Unsigned    = Type{0b_0000_0000, infoMask, "uint"}
	Negative    = Type{0b_0010_0000, infoMask, "nint"}
	ByteString  = Type{0b_0100_0000, infoMask, "bstr"}
	TextString  = Type{0b_0110_0000, infoMask, "tstr"}
	Array       = Type{0b_1000_0000, infoMask, "array"}
	Map         = Type{0b_1010_0000, infoMask, "map"}
	Tag         = Type{0b_1100_0000, infoMask, "tag"}
	SimpleFloat = Type{0b_1110_0000, infoMask, "simple"}

	Types = types{
		Unsigned,
		Negative,
		ByteString,
		TextString,
		Array,
		Map,
		Tag,
		SimpleFloat,
	}
)
