package kim

import (
	"unicode/utf8"

	"github.com/rawbytedev/kim/internal/common"
)

// DecodeRune decodes the first run of b and returns the rune and the
// number of bytes it occupied. If b is empty or ends inside the run the
// error is ErrTruncated; if the run does not hold a scalar value it is
// ErrInvalidScalarValue. On error the rune is utf8.RuneError.
func DecodeRune(b []byte) (rune, int, error) {
	return decodeRun(b, 0)
}

// decodeRun decodes the run starting at b[0]; off is its position in the
// caller's sequence and only feeds error offsets.
func decodeRun(b []byte, off int) (rune, int, error) {
	x, n, ok := common.ReadRun(b)
	if !ok {
		return utf8.RuneError, n, &Error{Kind: KindTruncated, Offset: off}
	}
	if !ValidScalar(x) {
		return utf8.RuneError, n, &Error{Kind: KindInvalidScalarValue, Offset: off, Value: x}
	}
	return rune(x), n, nil
}

// Decode returns the text held by the KIM sequence b.
func Decode(b []byte) (string, error) {
	out, err := AppendText(make([]byte, 0, utf8Cap(b)), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// AppendText appends the UTF-8 text held by b to dst. On failure the
// returned slice is nil.
func AppendText(dst, b []byte) ([]byte, error) {
	for off := 0; off < len(b); {
		r, n, err := decodeRun(b[off:], off)
		if err != nil {
			return nil, err
		}
		dst = utf8.AppendRune(dst, r)
		off += n
	}
	return dst, nil
}

// Valid reports whether b is a complete sequence of well-formed runs.
func Valid(b []byte) bool {
	return validate(b) == nil
}

func validate(b []byte) error {
	for off := 0; off < len(b); {
		_, n, err := decodeRun(b[off:], off)
		if err != nil {
			return err
		}
		off += n
	}
	return nil
}

// RuneCount returns the number of terminal bytes in b, which is the rune
// count of a well-formed sequence.
func RuneCount(b []byte) int {
	n := 0
	for _, c := range b {
		if common.IsTerminal(c) {
			n++
		}
	}
	return n
}

// a 3-byte run can expand to 4 UTF-8 bytes
func utf8Cap(b []byte) int {
	return len(b) + len(b)/3
}

// Decoder reuses one text buffer across calls.
// It is not safe for concurrent use.
type Decoder struct {
	buf []byte
}

func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 64)}
}

func (d *Decoder) Reset() {
	if d.buf != nil {
		d.buf = d.buf[:0]
	}
}

// Decode decodes b into the Decoder's buffer and returns a copy as text.
func (d *Decoder) Decode(b []byte) (string, error) {
	d.Reset()
	if c := utf8Cap(b); cap(d.buf) < c {
		d.buf = make([]byte, 0, c)
	}
	out, err := AppendText(d.buf, b)
	if err != nil {
		return "", err
	}
	d.buf = out
	return string(out), nil
}
