package compactwire

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/kim"
	"github.com/stretchr/testify/require"
)

func mustKim(t *testing.T, s string) *kim.KimString {
	t.Helper()
	k, err := kim.FromText(s)
	require.NoError(t, err)
	return k
}

func TestDataFrameRoundTrip(t *testing.T) {
	for _, opts := range []Options{
		{},
		{Compress: true},
		{Compress: true, Level: zstd.SpeedBestCompression},
	} {
		for _, s := range []string{"", "c", "𓂀ßa", strings.Repeat("snowman ☃ ", 200)} {
			d := &DataFrame{Opts: opts}
			k := mustKim(t, s)
			frame, err := d.EncodeDataFrame(k)
			require.NoError(t, err)

			typ, err := PeekType(frame)
			require.NoError(t, err)
			require.Equal(t, TypeData, typ)
			require.Equal(t, uint32(len(frame)), binary.LittleEndian.Uint32(frame[3:]))

			got, err := d.DecodeDataFrame(frame)
			require.NoError(t, err)
			require.True(t, k.Equal(got))
			text, err := got.IntoText()
			require.NoError(t, err)
			require.Equal(t, s, text)
		}
	}
}

func TestDataFrameFlags(t *testing.T) {
	k := mustKim(t, strings.Repeat("a", 1024))
	plain, err := (&DataFrame{}).EncodeDataFrame(k)
	require.NoError(t, err)
	require.Zero(t, plain[7]&FlagZstd)

	packed, err := (&DataFrame{Opts: Options{Compress: true}}).EncodeDataFrame(k)
	require.NoError(t, err)
	require.NotZero(t, packed[7]&FlagZstd)
	require.Less(t, len(packed), len(plain))
}

func TestDataFrameNil(t *testing.T) {
	var d DataFrame
	frame, err := d.EncodeDataFrame(nil)
	require.NoError(t, err)
	k, err := d.DecodeDataFrame(frame)
	require.NoError(t, err)
	require.Zero(t, k.Len())
}

func TestDataFrameCorruption(t *testing.T) {
	var d DataFrame
	frame, err := d.EncodeDataFrame(mustKim(t, "cat"))
	require.NoError(t, err)

	flipped := append([]byte{}, frame...)
	flipped[len(flipped)-6] ^= 0x01
	_, err = d.DecodeDataFrame(flipped)
	require.ErrorIs(t, err, ErrCRCMismatch)

	_, err = d.DecodeDataFrame(frame[:len(frame)-1])
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = d.DecodeDataFrame(frame[:4])
	require.ErrorIs(t, err, ErrShortFrame)

	_, err = d.DecodeDataFrame([]byte("XX\x01........"))
	require.ErrorIs(t, err, ErrNotFrame)

	var e ErrorFrame
	errFrame, err := e.EncodeErrorFrame(1, nil)
	require.NoError(t, err)
	_, err = d.DecodeDataFrame(errFrame)
	require.ErrorIs(t, err, ErrNotFrame)
}

// build a frame around raw payload bytes, bypassing kim validation
func rawDataFrame(count byte, payload []byte) []byte {
	out := []byte{'K', 'M', TypeData, 0, 0, 0, 0, 0, count}
	out = append(out, payload...)
	binary.LittleEndian.PutUint32(out[3:], uint32(len(out)+crcLen))
	return appendCRC(out)
}

func TestDataFrameRejectsBadPayload(t *testing.T) {
	var d DataFrame
	_, err := d.DecodeDataFrame(rawDataFrame(1, []byte{0x61, 0x81}))
	require.ErrorIs(t, err, kim.ErrTruncated)

	_, err = d.DecodeDataFrame(rawDataFrame(1, []byte{0x83, 0xB0, 0x00}))
	require.ErrorIs(t, err, kim.ErrInvalidScalarValue)

	_, err = d.DecodeDataFrame(rawDataFrame(5, []byte{0x61}))
	require.ErrorIs(t, err, ErrCountMismatch)

	k, err := d.DecodeDataFrame(rawDataFrame(2, []byte{0x81, 0x5F, 0x61}))
	require.NoError(t, err)
	require.Equal(t, 3, k.Len())
}

func TestErrorFrameRoundTrip(t *testing.T) {
	var e ErrorFrame
	frame, err := e.EncodeErrorFrame(7, []byte("boom"))
	require.NoError(t, err)
	code, data, err := e.DecodeErrorFrame(frame)
	require.NoError(t, err)
	require.Equal(t, byte(7), code)
	require.Equal(t, []byte("boom"), data)

	frame[len(frame)-5] ^= 0xFF
	_, _, err = e.DecodeErrorFrame(frame)
	require.ErrorIs(t, err, ErrCRCMismatch)

	_, err = e.EncodeErrorFrame(1, make([]byte, 1<<16))
	require.ErrorIs(t, err, ErrPayloadTooLong)
}

func TestEncodeCodecError(t *testing.T) {
	_, decErr := kim.Decode([]byte{0x61, 0x80})
	require.Error(t, decErr)

	var e ErrorFrame
	frame, err := e.EncodeCodecError(decErr)
	require.NoError(t, err)
	code, data, err := e.DecodeErrorFrame(frame)
	require.NoError(t, err)
	require.Equal(t, byte(kim.KindTruncated), code)
	require.Equal(t, decErr.Error(), string(data))

	_, err = e.EncodeCodecError(nil)
	require.Error(t, err)
}

func BenchmarkDataFrame(b *testing.B) {
	k, err := kim.FromText(strings.Repeat("The snowman ☃ met 𓂀 in Straße. ", 32))
	require.NoError(b, err)
	for _, opts := range []Options{{}, {Compress: true, Level: zstd.SpeedFastest}} {
		d := &DataFrame{Opts: opts}
		name := "plain"
		if opts.Compress {
			name = "zstd"
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				frame, _ := d.EncodeDataFrame(k)
				_, _ = d.DecodeDataFrame(frame)
			}
		})
	}
}
