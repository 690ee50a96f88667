package common

// Bit layout shared by every KIM byte.
const (
	Continuation = 0x80 // more groups of the same value follow
	GroupMask    = 0x7F
	GroupBits    = 7

	// Overflow is what ReadRun reports for runs whose value needs more
	// than 21 bits. No KIM length class carries more than 21 data bits.
	Overflow = 1 << 21
)

// AppendGroups appends the low 7*n bits of x to dst as n big-endian 7-bit
// groups. Every group but the last carries the continuation bit.
// n must be between 1 and 4.
func AppendGroups(dst []byte, x uint32, n int) []byte {
	var scratch [4]byte
	for i := n - 1; i >= 0; i-- {
		scratch[i] = byte(x)&GroupMask | Continuation
		x >>= GroupBits
	}
	scratch[n-1] &^= Continuation
	return append(dst, scratch[:n]...)
}

// ReadRun accumulates big-endian 7-bit groups from b up to and including
// the first byte without the continuation bit. It returns the value, the
// number of bytes consumed and whether the run was terminated. A run that
// is still open when b is exhausted returns ok=false with n=len(b).
// Values wider than 21 bits saturate to Overflow.
func ReadRun(b []byte) (x uint32, n int, ok bool) {
	for i, c := range b {
		x = x<<GroupBits | uint32(c&GroupMask)
		if x > Overflow {
			x = Overflow
		}
		if c&Continuation == 0 {
			return x, i + 1, true
		}
	}
	return x, len(b), false
}

// IsTerminal reports whether c closes a run.
func IsTerminal(c byte) bool {
	return c&Continuation == 0
}

// WriteVarUint appends a little-endian base-128 varint to buf.
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns (0, 0) when b ends before the varint does.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if s > 63 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
