package compactwire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/kim"
	"github.com/rawbytedev/kim/internal/common"
)

// EncodeDataFrame serializes k, compressing the payload when Opts.Compress
// is set. A nil k encodes as an empty sequence.
func (d *DataFrame) EncodeDataFrame(k *kim.KimString) ([]byte, error) {
	payload := k.Bytes()
	var flags byte
	if d.Opts.Compress {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(d.Opts.level()),
			zstd.WithZeroFrames(true))
		if err != nil {
			return nil, fmt.Errorf("compactwire: zstd writer: %w", err)
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("compactwire: zstd close: %w", err)
		}
		flags |= FlagZstd
	}
	if uint64(len(payload)) > math.MaxUint32-minDataFrame-10 {
		return nil, ErrPayloadTooLong
	}

	d.buf = &bytes.Buffer{}
	writePreamble(d.buf, TypeData)
	binary.Write(d.buf, binary.LittleEndian, uint32(0)) // length placeholder
	d.buf.WriteByte(flags)
	d.buf.Write(common.WriteVarUint(nil, uint64(k.RuneCount())))
	d.buf.Write(payload)

	// length covers the whole frame including the crc
	out := d.buf.Bytes()
	binary.LittleEndian.PutUint32(out[preambleLen:], uint32(len(out)+crcLen))
	return appendCRC(out), nil
}

// EncodeErrorFrame builds an error frame with code and custom data.
func (e *ErrorFrame) EncodeErrorFrame(code byte, data []byte) ([]byte, error) {
	if len(data) > math.MaxUint16 {
		return nil, ErrPayloadTooLong
	}
	e.buf = &bytes.Buffer{}
	writePreamble(e.buf, TypeError)

	// TLV length = code(1) + dataLen(2) + len(data)
	binary.Write(e.buf, binary.LittleEndian, uint32(1+2+len(data)))
	e.buf.WriteByte(code)
	binary.Write(e.buf, binary.LittleEndian, uint16(len(data)))
	e.buf.Write(data)
	return appendCRC(e.buf.Bytes()), nil
}

// EncodeCodecError reports err as an error frame. The code is the
// kim.Kind of err (0 for foreign errors) and the data its message.
func (e *ErrorFrame) EncodeCodecError(err error) ([]byte, error) {
	if err == nil {
		return nil, errors.New("compactwire: nil error")
	}
	return e.EncodeErrorFrame(byte(kim.KindOf(err)), []byte(err.Error()))
}

// appendCRC appends the crc of everything after the magic.
func appendCRC(out []byte) []byte {
	crc := crc32.ChecksumIEEE(out[len(magic):])
	return binary.LittleEndian.AppendUint32(out, crc)
}
