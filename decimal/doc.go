// Package decimal provides an arbitrary-precision base 10 floating point
// number.
//
// The equation for a decimal number is:
//
//	number = coefficient * 10 ^ exponent
//
// Where coefficient is an unbounded integer and exponent is an unbounded
// integer. For example:
//
//	1.23 = 123 * 10^-2
//
// Unlike most decimal libraries the exponent is not limited to 32 bits:
// 1e+99999999999999999999999999 is a valid Decimal.
//
// Values also carry negative zero, infinities and NaN so that nothing is lost
// when converting from binary floats.
//
// # Encoding
//
// In CBOR a decimal is a tag 4 (decimal fraction) holding a two element
// array of exponent then mantissa. The exponent must fit in 64 signed bits;
// tag 264 lifts that limit and allows a bignum exponent.
//
//	| Tag | Array | Exponent     | Mantissa              |
//	|-----|-------|--------------|-----------------------|
//	| C4  | 82    | 21 (-2)      | 18 7B (123)           | 1.23
//	| C4  | 82    | 20 (-1)      | C2 42 01 00 (256)     | 25.6
//	| D9 0108 | 82 | C3 49 01 00.. | 01                   | 1E-18446744073709551617
//	|-----|-------|--------------|-----------------------|
//
// The mantissa may be an integer or a tag 2/3 bignum. Exponent zero decodes
// to a plain integer rather than a Decimal.
//
// # Text
//
// String follows the General Decimal Arithmetic to-scientific-string rules.
// With adjusted = exponent + digits - 1:
//
//	| Exponent | Adjusted | Form          | Example    |
//	|----------|----------|---------------|------------|
//	| 0        | any      | digits        | 123        |
//	| < 0      | >= -6    | plain         | 1.23       |
//	| < 0      | < -6     | scientific    | 1.23E-7    |
//	| > 0      | any      | scientific    | 1.23E+5    |
//	|----------|----------|---------------|------------|
//
// Negative zero keeps its sign and exponent: -0.0, -0E+1.
package decimal
