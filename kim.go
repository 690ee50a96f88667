package kim

import (
	"bytes"
	"strings"
)

// KimString owns one KIM byte sequence. It is built once by FromText or
// FromBytes, never mutated, and optionally consumed by IntoText.
// Len and Bytes are safe for concurrent readers.
type KimString struct {
	bytes []byte
}

// FromText encodes s. It fails only when s is not valid UTF-8.
func FromText(s string) (*KimString, error) {
	b, err := Encode(s)
	if err != nil {
		return nil, err
	}
	return &KimString{bytes: b}, nil
}

// FromBytes validates b as a complete KIM sequence and copies it into a
// new KimString.
func FromBytes(b []byte) (*KimString, error) {
	if err := validate(b); err != nil {
		return nil, err
	}
	return &KimString{bytes: bytes.Clone(b)}, nil
}

// Len returns the number of KIM bytes, not runes.
//
//	k, _ := kim.FromText("ß")
//	k.Len() // 2
func (k *KimString) Len() int {
	if k == nil {
		return 0
	}
	return len(k.bytes)
}

// Bytes returns the owned sequence without copying. The caller must not
// modify it.
func (k *KimString) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.bytes
}

// RuneCount returns the number of encoded scalar values.
func (k *KimString) RuneCount() int {
	return RuneCount(k.Bytes())
}

// IntoText decodes the sequence and releases it. After the call k is
// empty whether or not decoding succeeded.
func (k *KimString) IntoText() (string, error) {
	if k == nil {
		return "", nil
	}
	b := k.bytes
	k.bytes = nil
	return Decode(b)
}

func (k *KimString) Equal(o *KimString) bool {
	return bytes.Equal(k.Bytes(), o.Bytes())
}

// Bits renders the sequence as space separated 8-bit binary groups.
func (k *KimString) Bits() string {
	var sb strings.Builder
	for i, c := range k.Bytes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for s := 7; s >= 0; s-- {
			sb.WriteByte('0' + c>>s&1)
		}
	}
	return sb.String()
}
