package cbornum

import (
	"github.com/calebcase/cbornum/jsontext"
	"github.com/calebcase/cbornum/number"
	"github.com/calebcase/cbornum/tagged"
)

// JSONToCBOR decodes one JSON value from src and encodes it with the core
// deterministic CBOR encoding. Numbers keep their exact value: integers
// become CBOR integers or bignums and decimals become decimal fractions.
func JSONToCBOR(src jsontext.Source, opts jsontext.Options) (_ []byte, err error) {
	defer Error.WrapP(&err)

	v, err := jsontext.NewDecoder(src, opts).Decode()
	if err != nil {
		return nil, err
	}

	return tagged.EncMode.Marshal(encodable(v))
}

// encodable replaces every number in a decoded JSON value with a value the
// CBOR encoder knows how to marshal.
func encodable(v any) any {
	switch v := v.(type) {
	case number.Number:
		return tagged.Value{Number: v}
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = encodable(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = encodable(e)
		}

		return out
	}

	return v
}
