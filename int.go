// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package nbit implements fixed-width two's complement signed integers.
// The width is fixed when a value is created and can be any positive number of bits.
//
// Values are immutable: all operations return a new Int of the same width.
// Arithmetic wraps around on overflow the way an n-bit register does,
// so operations on valid operands never fail.
package nbit

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/avdva/nbit/internal/mathutil"
	"github.com/avdva/nbit/numerr"
)

// Int is an n-bit two's complement signed integer.
// The bit pattern is stored in 64-bit words, least significant word first.
// Bits above the width in the last word are always zero.
//
// The zero Int has zero width and is only useful as a target for UnmarshalText.
type Int struct {
	width int
	words []uint64
}

// New returns a 'width'-bit integer holding 'value'.
// Returns a range error if the value does not fit [-2^(width-1), 2^(width-1)-1].
func New(value int64, width int) (Int, error) {
	if err := checkWidth(width); err != nil {
		return Int{}, err
	}
	if width < mathutil.WordBits {
		limit := int64(1) << uint(width-1)
		if value < -limit || value >= limit {
			return Int{}, rangeError(big.NewInt(value), width)
		}
	}
	return fromInt64(value, width), nil
}

// MustNew is like New, but panics if the value is out of range.
func MustNew(value int64, width int) Int {
	i, err := New(value, width)
	if err != nil {
		panic(err)
	}
	return i
}

// NewFromBig returns a 'width'-bit integer holding 'value'.
// Returns a range error if the value does not fit [-2^(width-1), 2^(width-1)-1].
func NewFromBig(value *big.Int, width int) (Int, error) {
	if err := checkWidth(width); err != nil {
		return Int{}, err
	}
	if value.Cmp(minValue(width)) < 0 || value.Cmp(maxValue(width)) > 0 {
		return Int{}, rangeError(value, width)
	}
	pattern := value
	if value.Sign() < 0 {
		pattern = new(big.Int).Add(value, pow2(width))
	}
	return fromPattern(pattern, width), nil
}

func checkWidth(width int) error {
	if width < 1 {
		return numerr.Newf(numerr.Range, fmt.Sprint(width), "invalid bit width %d, must be positive", width)
	}
	return nil
}

func rangeError(value *big.Int, width int) error {
	s := value.String()
	return numerr.Newf(numerr.Range, s, "value '%s' is out of range for %d-bit signed number", s, width)
}

// fromInt64 stores a value that is known to fit 'width' bits.
func fromInt64(value int64, width int) Int {
	words := make([]uint64, mathutil.Words(width))
	words[0] = uint64(value)
	if value < 0 {
		for i := 1; i < len(words); i++ {
			words[i] = ^uint64(0)
		}
	}
	words[len(words)-1] &= mathutil.TopMask(width)
	return Int{width: width, words: words}
}

// fromPattern stores a non-negative bit pattern that is known to fit 'width' bits.
func fromPattern(pattern *big.Int, width int) Int {
	n := mathutil.Words(width)
	buf := pattern.FillBytes(make([]byte, n*8))
	words := make([]uint64, n)
	for i := range words {
		end := len(buf) - i*8
		words[i] = binary.BigEndian.Uint64(buf[end-8 : end])
	}
	return Int{width: width, words: words}
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

func maxValue(width int) *big.Int {
	p := pow2(width - 1)
	return p.Sub(p, big.NewInt(1))
}

func minValue(width int) *big.Int {
	p := pow2(width - 1)
	return p.Neg(p)
}

// Width returns the number of bits.
func (i Int) Width() int {
	return i.width
}

// Bit returns the n-th bit, where bit 0 is the sign bit
// and bit Width()-1 is the least significant one.
func (i Int) Bit(n int) bool {
	if n < 0 || n >= i.width {
		panic(fmt.Sprintf("nbit: bit index %d out of range for %d-bit value", n, i.width))
	}
	return i.rawBit(i.width - 1 - n)
}

// rawBit returns the bit with weight 2^pos.
func (i Int) rawBit(pos int) bool {
	return i.words[pos/mathutil.WordBits]>>uint(pos%mathutil.WordBits)&1 == 1
}

// Bits returns all the bits, the sign bit first.
func (i Int) Bits() []bool {
	result := make([]bool, i.width)
	for n := range result {
		result[n] = i.rawBit(i.width - 1 - n)
	}
	return result
}

// IsNeg reports whether the sign bit is set.
func (i Int) IsNeg() bool {
	return i.width > 0 && i.rawBit(i.width-1)
}

// Sign returns -1 if i < 0, 0 if i == 0, 1 if i > 0.
func (i Int) Sign() int {
	if i.IsNeg() {
		return -1
	}
	for _, w := range i.words {
		if w != 0 {
			return 1
		}
	}
	return 0
}

// Eq returns true if both values have the same width and bits.
func (i Int) Eq(other Int) bool {
	if i.width != other.width {
		return false
	}
	for n, w := range i.words {
		if w != other.words[n] {
			return false
		}
	}
	return true
}

// Value returns the signed value.
func (i Int) Value() *big.Int {
	if i.width == 0 {
		return new(big.Int)
	}
	if v, ok := i.Int64(); ok {
		return big.NewInt(v)
	}
	u := i.unsigned()
	if i.IsNeg() {
		u.Sub(u, pow2(i.width))
	}
	return u
}

// Int64 returns the signed value as an int64.
// ok is false if the value does not fit 64 bits.
func (i Int) Int64() (v int64, ok bool) {
	if i.width == 0 {
		return 0, true
	}
	if i.width <= mathutil.WordBits {
		return mathutil.SignExtend(i.words[0], uint(i.width)), true
	}
	// wider values fit if all the upper bits repeat bit 63.
	ext := uint64(0)
	if i.words[0]>>63 == 1 {
		ext = ^uint64(0)
	}
	last := len(i.words) - 1
	for n := 1; n < last; n++ {
		if i.words[n] != ext {
			return 0, false
		}
	}
	if i.words[last] != ext&mathutil.TopMask(i.width) {
		return 0, false
	}
	return int64(i.words[0]), true
}

// unsigned returns the bit pattern as an unsigned number.
func (i Int) unsigned() *big.Int {
	buf := make([]byte, len(i.words)*8)
	for n, w := range i.words {
		end := len(buf) - n*8
		binary.BigEndian.PutUint64(buf[end-8:end], w)
	}
	return new(big.Int).SetBytes(buf)
}
