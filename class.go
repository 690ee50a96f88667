package kim

import "unicode/utf8"

// Class is the UTF-8 length class of a scalar value. The zero Class means
// the value does not fit any class.
type Class uint8

const (
	Class1 Class = iota + 1
	Class2
	Class3
	Class4
)

const (
	// MaxRune is the largest Unicode scalar value.
	MaxRune = utf8.MaxRune
	// MaxValue is the largest integer class 4 can carry.
	MaxValue = 1<<21 - 1

	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// fixed per class; g is never re-minimized for small values
var classes = [...]struct {
	dataBits int
	kimLen   int
	utf8Len  int
}{
	Class1: {7, 1, 1},
	Class2: {11, 2, 2},
	Class3: {16, 3, 3},
	Class4: {21, 3, 4},
}

// ClassOf returns the length class of v using the UTF-8 thresholds.
func ClassOf(v rune) Class {
	switch {
	case v < 0:
		return 0
	case v < 0x80:
		return Class1
	case v < 0x800:
		return Class2
	case v < 0x10000:
		return Class3
	case v <= MaxValue:
		return Class4
	default:
		return 0
	}
}

func (c Class) Valid() bool { return c >= Class1 && c <= Class4 }

// DataBits is the fixed data-bit capacity D of the class.
func (c Class) DataBits() int {
	if !c.Valid() {
		return 0
	}
	return classes[c].dataBits
}

// Len is the number of KIM bytes g a value of this class encodes to.
func (c Class) Len() int {
	if !c.Valid() {
		return 0
	}
	return classes[c].kimLen
}

// UTF8Len is the number of UTF-8 bytes for the same class.
func (c Class) UTF8Len() int {
	if !c.Valid() {
		return 0
	}
	return classes[c].utf8Len
}

// Padding is the number of leading zero bits added to reach 7*Len bits.
func (c Class) Padding() int {
	return 7*c.Len() - c.DataBits()
}

// ValidScalar reports whether v is a Unicode scalar value.
func ValidScalar(v uint32) bool {
	return v <= MaxRune && (v < surrogateMin || v > surrogateMax)
}
