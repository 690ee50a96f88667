// Package kim transcodes Unicode text between UTF-8 and the KIM byte
// format.
//
// Each scalar value is widened to the data-bit capacity of its UTF-8
// length class, split into big-endian 7-bit groups and written one group
// per byte. Bit 7 of a byte is set when more groups of the same value
// follow and clear on the last one:
//
//	class  range              data bits  KIM bytes
//	1      U+0000..U+007F      7          1
//	2      U+0080..U+07FF      11         2
//	3      U+0800..U+FFFF      16         3
//	4      U+10000..U+10FFFF   21         3
//
// Encoding is context free, so the encoding of a concatenation is the
// concatenation of the encodings. Decoding rejects a sequence that ends
// inside a run (ErrTruncated) and runs that do not hold a scalar value
// (ErrInvalidScalarValue). All failures are *Error values carrying the
// byte offset of the problem.
//
// Package-level functions share no state and may be called concurrently.
package kim
