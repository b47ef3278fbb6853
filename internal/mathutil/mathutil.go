// Package mathutil has helpers for bit width arithmetic.
package mathutil

// WordBits is the number of bits in a storage word.
const WordBits = 64

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Words returns the number of 64-bit words needed to hold 'width' bits.
func Words(width int) int {
	return CeilDiv(width, WordBits)
}

// TopMask returns the mask of bits used in the most significant word
// of a 'width'-bit vector.
func TopMask(width int) uint64 {
	if r := width % WordBits; r != 0 {
		return 1<<uint(r) - 1
	}
	return ^uint64(0)
}

// SignExtend returns the signed two's complement value of the low n bits of x.
// 1 <= n <= 64. Bits of x above n are ignored.
//
//	SignExtend(0b011, 3) == 3
//	SignExtend(0b111, 3) == -1
//	SignExtend(0b100, 3) == -4
func SignExtend(x uint64, n uint) int64 {
	if n >= WordBits {
		return int64(x)
	}
	x &= 1<<n - 1
	mask := uint64(1) << (n - 1)
	return int64((x ^ mask) - mask)
}
