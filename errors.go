package kim

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange         = errors.New("kim: value outside every length class")
	ErrTruncated          = errors.New("kim: sequence ends inside a run")
	ErrInvalidScalarValue = errors.New("kim: decoded value is not a unicode scalar value")
	ErrInvalidUTF8        = errors.New("kim: text is not valid utf-8")
)

// Kind classifies a codec failure.
type Kind uint8

const (
	KindOutOfRange Kind = iota + 1
	KindTruncated
	KindInvalidScalarValue
	KindInvalidUTF8
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "OutOfRange"
	case KindTruncated:
		return "Truncated"
	case KindInvalidScalarValue:
		return "InvalidScalarValue"
	case KindInvalidUTF8:
		return "InvalidUTF8"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindOutOfRange:
		return ErrOutOfRange
	case KindTruncated:
		return ErrTruncated
	case KindInvalidScalarValue:
		return ErrInvalidScalarValue
	case KindInvalidUTF8:
		return ErrInvalidUTF8
	default:
		return nil
	}
}

// Error is returned by every failing encode or decode call.
// Offset is a byte offset into the input: the text for encoding, the KIM
// sequence for decoding (start of the offending run).
type Error struct {
	Kind   Kind
	Offset int
	Value  uint32 // offending value, zero when there is none
}

func (e *Error) Error() string {
	msg := "kim: " + e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	switch e.Kind {
	case KindOutOfRange, KindInvalidScalarValue:
		return fmt.Sprintf("%s (%#x) at offset %d", msg, e.Value, e.Offset)
	default:
		return fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
}

// Unwrap lets errors.Is match the package sentinels.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the Kind carried by err, or 0 when err is not a codec error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
