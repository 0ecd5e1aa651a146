// Package control classifies the heads of CBOR data items.
//
// Every CBOR data item starts with an initial byte. The top three bits are
// the major type and the low five bits are the additional information, which
// either holds a small argument directly or says how many bytes of argument
// follow.
//
// Initial Byte
//
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 || Type   |                                    |
//	|-----------|-------------------||--------|------------------------------------|
//	| 0 . 0 . 0 |                   || uint   | unsigned integer                   |
//	| 0 . 0 . 1 |                   || nint   | negative integer, -1 - argument    |
//	| 0 . 1 . 0 |                   || bstr   | byte string, argument bytes        |
//	| 0 . 1 . 1 |                   || tstr   | UTF-8 text, argument bytes         |
//	| 1 . 0 . 0 |                   || array  | argument items                     |
//	| 1 . 0 . 1 |                   || map    | argument pairs                     |
//	| 1 . 1 . 0 |                   || tag    | tag number, one enclosed item      |
//	| 1 . 1 . 1 |                   || simple | simple values and floats           |
//	|-----------|-------------------||--------|------------------------------------|
//
// Additional Information
//
//	| Value   | Argument                                              |
//	|---------|-------------------------------------------------------|
//	| 0 - 23  | the value itself                                      |
//	| 24      | next 1 byte                                           |
//	| 25      | next 2 bytes, big-endian                              |
//	| 26      | next 4 bytes, big-endian                              |
//	| 27      | next 8 bytes, big-endian                              |
//	| 28 - 30 | reserved, always an error                             |
//	| 31      | indefinite length (bstr, tstr, array, map) or break   |
//	|---------|-------------------------------------------------------|
//
// The numeric decoders only need the head of an item to tell a byte string
// from a text string, or an integer from a float, before handing the item to
// the full CBOR decoder.
package control
