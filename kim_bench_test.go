package kim

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

var benchText = strings.Repeat("The snowman ☃ met 𓂀 in Straße. ", 32)

func BenchmarkEncode(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchText)))
	for i := 0; i < b.N; i++ {
		_, _ = Encode(benchText)
	}
}

func BenchmarkEncoderReuse(b *testing.B) {
	e := NewEncoder()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchText)))
	for i := 0; i < b.N; i++ {
		_, _ = e.Encode(benchText)
	}
}

func BenchmarkDecode(b *testing.B) {
	enc, err := Encode(benchText)
	require.NoError(b, err)
	b.ReportAllocs()
	b.SetBytes(int64(len(enc)))
	var out string
	for i := 0; i < b.N; i++ {
		out, _ = Decode(enc)
	}
	require.Equal(b, benchText, out)
}

func BenchmarkDecoderReuse(b *testing.B) {
	enc, err := Encode(benchText)
	require.NoError(b, err)
	d := NewDecoder()
	b.ReportAllocs()
	b.SetBytes(int64(len(enc)))
	for i := 0; i < b.N; i++ {
		_, _ = d.Decode(enc)
	}
}

// baseline: walking the same text as UTF-8 runes
func BenchmarkUTF8Walk(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchText)))
	for i := 0; i < b.N; i++ {
		buf := make([]byte, 0, len(benchText))
		for _, r := range benchText {
			buf = utf8.AppendRune(buf, r)
		}
	}
}
