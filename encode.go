package kim

import (
	"unicode/utf8"

	"github.com/rawbytedev/kim/internal/common"
)

// RuneLen returns the number of KIM bytes needed to encode r, or -1 if r
// is not a Unicode scalar value.
func RuneLen(r rune) int {
	if r < 0 || !ValidScalar(uint32(r)) {
		return -1
	}
	return ClassOf(r).Len()
}

// AppendRune appends the KIM encoding of r to dst.
// Values that are not Unicode scalar values fail with ErrOutOfRange and
// leave dst unchanged.
func AppendRune(dst []byte, r rune) ([]byte, error) {
	c := ClassOf(r)
	if !c.Valid() || !ValidScalar(uint32(r)) {
		return dst, &Error{Kind: KindOutOfRange, Value: uint32(r)}
	}
	return common.AppendGroups(dst, uint32(r), c.Len()), nil
}

// Encode returns the KIM encoding of s.
func Encode(s string) ([]byte, error) {
	return AppendString(make([]byte, 0, len(s)), s)
}

// AppendString appends the KIM encoding of s to dst. On failure the
// returned slice is nil.
func AppendString(dst []byte, s string) ([]byte, error) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, &Error{Kind: KindInvalidUTF8, Offset: i}
		}
		var err error
		dst, err = AppendRune(dst, r)
		if err != nil {
			err.(*Error).Offset = i
			return nil, err
		}
		i += size
	}
	return dst, nil
}

// Encoder reuses one output buffer across calls.
// It is not safe for concurrent use.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

func (e *Encoder) Reset() {
	if e.buf != nil {
		e.buf = e.buf[:0]
	}
}

// Encode encodes s into the Encoder's buffer. The returned slice is only
// valid until the next call to Encode or Reset.
func (e *Encoder) Encode(s string) ([]byte, error) {
	e.Reset()
	if cap(e.buf) < len(s) {
		e.buf = make([]byte, 0, len(s))
	}
	out, err := AppendString(e.buf, s)
	if err != nil {
		return nil, err
	}
	e.buf = out
	return out, nil
}
