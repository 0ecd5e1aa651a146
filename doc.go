// Package cbornum decodes numbers from CBOR and JSON without losing
// precision.
//
// Every number, whatever its encoding, becomes a number.Number: a fixed
// 64-bit integer, an arbitrary-precision integer, a double, an
// arbitrary-precision decimal or binary float, or a rational. Numbers of
// different kinds add, subtract and compare exactly.
//
// CBOR numbers may be plain integers and floats or one of the tagged
// extended forms:
//
//	+-----+---------------------------+----------------------+
//	| Tag | Content                   | Value                |
//	+-----+---------------------------+----------------------+
//	|   2 | bytes                     | n                    |
//	|   3 | bytes                     | -1 - n               |
//	|   4 | [exponent, mantissa]      | mantissa * 10^exp    |
//	|   5 | [exponent, mantissa]      | mantissa * 2^exp     |
//	|  30 | [numerator, denominator]  | numerator / denom    |
//	| 264 | [exponent, mantissa]      | as 4, any exponent   |
//	| 265 | [exponent, mantissa]      | as 5, any exponent   |
//	+-----+---------------------------+----------------------+
//
// The exponent of tags 4 and 5 is limited to 64 bits. Elements of the two
// element arrays are CBOR integers or bignums.
//
// JSON text is parsed by package jsontext; JSONToCBOR converts it to CBOR
// keeping every number exact.
package cbornum

import "github.com/zeebo/errs"

// Error is the error class for this package.
var Error = errs.Class("cbornum")
