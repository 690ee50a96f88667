package compactwire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/kim"
	"github.com/rawbytedev/kim/internal/common"
)

// maxDecompressed bounds zstd output to keep hostile frames from
// allocating without limit.
const maxDecompressed = 64 << 20

// DecodeDataFrame checks the frame and returns its payload as a validated
// KimString.
func (d *DataFrame) DecodeDataFrame(data []byte) (*kim.KimString, error) {
	t, err := readPreamble(data)
	if err != nil {
		return nil, err
	}
	if t != TypeData {
		return nil, ErrNotFrame
	}
	if len(data) < minDataFrame {
		return nil, ErrShortFrame
	}
	length := binary.LittleEndian.Uint32(data[preambleLen:])
	if int64(length) != int64(len(data)) {
		return nil, ErrLengthMismatch
	}
	if err := checkCRC(data); err != nil {
		return nil, err
	}

	flags := data[preambleLen+4]
	body := data[preambleLen+5 : len(data)-crcLen]
	count, n := common.ReadVarUint(body)
	if n == 0 {
		return nil, fmt.Errorf("%w: bad rune count", ErrNotFrame)
	}
	payload := body[n:]

	if flags&FlagZstd != 0 {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressed))
		if err != nil {
			return nil, fmt.Errorf("compactwire: zstd reader: %w", err)
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("compactwire: zstd: %w", err)
		}
	}

	k, err := kim.FromBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("compactwire: payload: %w", err)
	}
	if uint64(k.RuneCount()) != count {
		return nil, ErrCountMismatch
	}
	return k, nil
}

// DecodeErrorFrame parses an error frame and returns code and data.
func (e *ErrorFrame) DecodeErrorFrame(data []byte) (byte, []byte, error) {
	t, err := readPreamble(data)
	if err != nil {
		return 0, nil, err
	}
	if t != TypeError {
		return 0, nil, ErrNotFrame
	}
	if len(data) < minErrorFrame {
		return 0, nil, ErrShortFrame
	}
	if err := checkCRC(data); err != nil {
		return 0, nil, err
	}

	tlv := binary.LittleEndian.Uint32(data[preambleLen:])
	code := data[preambleLen+4]
	dataLen := int(binary.LittleEndian.Uint16(data[preambleLen+5:]))
	start := preambleLen + 7
	if int64(tlv) != int64(1+2+dataLen) || start+dataLen != len(data)-crcLen {
		return 0, nil, ErrLengthMismatch
	}
	custom := make([]byte, dataLen)
	copy(custom, data[start:start+dataLen])
	return code, custom, nil
}

// PeekType returns the frame type without validating the rest.
func PeekType(data []byte) (byte, error) {
	return readPreamble(data)
}

func checkCRC(data []byte) error {
	end := len(data) - crcLen
	want := binary.LittleEndian.Uint32(data[end:])
	if crc32.ChecksumIEEE(data[len(magic):end]) != want {
		return ErrCRCMismatch
	}
	return nil
}
