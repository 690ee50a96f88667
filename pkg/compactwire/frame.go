// Package compactwire wraps KIM sequences in small self-checking frames
// so they can be stored or sent as-is.
//
// Data frame:
//
//	magic "KM" | type | total length u32 | flags | rune count uvarint | payload | crc32
//
// Error frame:
//
//	magic "KM" | type | tlv length u32 | code | data length u16 | data | crc32
//
// Integers are little-endian. The CRC (IEEE) covers everything after the
// magic.
package compactwire

import (
	"bytes"
	"errors"

	"github.com/klauspost/compress/zstd"
)

const (
	TypeData  byte = 0x01
	TypeError byte = 0x02
)

const (
	// FlagZstd marks a payload compressed with zstd.
	FlagZstd byte = 1 << 0
)

var magic = [2]byte{'K', 'M'}

const (
	preambleLen = 3 // magic + type
	crcLen      = 4
	// smallest data frame: preamble, length, flags, one-byte count, crc
	minDataFrame = preambleLen + 4 + 1 + 1 + crcLen
	// smallest error frame: preamble, tlv, code, data length, crc
	minErrorFrame = preambleLen + 4 + 1 + 2 + crcLen
)

var (
	ErrNotFrame       = errors.New("compactwire: not a frame of the expected type")
	ErrShortFrame     = errors.New("compactwire: frame too short")
	ErrLengthMismatch = errors.New("compactwire: length mismatch")
	ErrCRCMismatch    = errors.New("compactwire: crc mismatch")
	ErrCountMismatch  = errors.New("compactwire: rune count mismatch")
	ErrPayloadTooLong = errors.New("compactwire: payload too long")
)

// Options tunes data frame encoding.
type Options struct {
	// Compress stores the payload zstd-compressed.
	Compress bool
	// Level is the zstd level; zero means zstd.SpeedDefault.
	Level zstd.EncoderLevel
}

func (o Options) level() zstd.EncoderLevel {
	if o.Level == 0 {
		return zstd.SpeedDefault
	}
	return o.Level
}

// DataFrame encodes and decodes frames carrying one KimString.
// It is not safe for concurrent use.
type DataFrame struct {
	Opts Options
	buf  *bytes.Buffer
}

// ErrorFrame carries a failure code and free-form data back to a sender.
type ErrorFrame struct {
	buf *bytes.Buffer
}

func writePreamble(buf *bytes.Buffer, t byte) {
	buf.Write(magic[:])
	buf.WriteByte(t)
}

func readPreamble(data []byte) (byte, error) {
	if len(data) < preambleLen {
		return 0, ErrShortFrame
	}
	if data[0] != magic[0] || data[1] != magic[1] {
		return 0, ErrNotFrame
	}
	return data[2], nil
}
