// Copyright 2020 Aleksandr Demakin. All rights reserved.

package nbit

import (
	"fmt"
	"math/big"

	"github.com/avdva/nbit/internal/mathutil"
)

// Add returns i + other.
// If the sum does not fit the width, it wraps around by 2^width once,
// so that max + 1 == min.
// Both values must have the same width, otherwise Add panics.
func (i Int) Add(other Int) Int {
	i.mustMatch(other, "Add")
	if i.width < mathutil.WordBits {
		x, _ := i.Int64()
		y, _ := other.Int64()
		return fromInt64(wrapInt64(x+y, i.width), i.width)
	}
	sum := new(big.Int).Add(i.Value(), other.Value())
	return fromWrapped(sum, i.width)
}

// Sub returns i - other, wrapping around like Add.
// Both values must have the same width, otherwise Sub panics.
func (i Int) Sub(other Int) Int {
	i.mustMatch(other, "Sub")
	if i.width < mathutil.WordBits {
		x, _ := i.Int64()
		y, _ := other.Int64()
		return fromInt64(wrapInt64(x-y, i.width), i.width)
	}
	diff := new(big.Int).Sub(i.Value(), other.Value())
	return fromWrapped(diff, i.width)
}

// Inc returns i + 1, wrapping max to min.
// Unlike i.Add(MustNew(1, width)), it works for 1-bit values, where 1 is not representable.
func (i Int) Inc() Int {
	if i.width < mathutil.WordBits {
		x, _ := i.Int64()
		return fromInt64(wrapInt64(x+1, i.width), i.width)
	}
	return fromWrapped(new(big.Int).Add(i.Value(), big.NewInt(1)), i.width)
}

// Dec returns i - 1, wrapping min to max.
func (i Int) Dec() Int {
	if i.width < mathutil.WordBits {
		x, _ := i.Int64()
		return fromInt64(wrapInt64(x-1, i.width), i.width)
	}
	return fromWrapped(new(big.Int).Sub(i.Value(), big.NewInt(1)), i.width)
}

// And returns the bitwise i & other.
// Both values must have the same width, otherwise And panics.
func (i Int) And(other Int) Int {
	i.mustMatch(other, "And")
	return i.combine(other, func(a, b uint64) uint64 { return a & b })
}

// Or returns the bitwise i | other.
// Both values must have the same width, otherwise Or panics.
func (i Int) Or(other Int) Int {
	i.mustMatch(other, "Or")
	return i.combine(other, func(a, b uint64) uint64 { return a | b })
}

// Xor returns the bitwise i ^ other.
// Both values must have the same width, otherwise Xor panics.
func (i Int) Xor(other Int) Int {
	i.mustMatch(other, "Xor")
	return i.combine(other, func(a, b uint64) uint64 { return a ^ b })
}

// Not flips every bit, including the sign bit.
func (i Int) Not() Int {
	words := make([]uint64, len(i.words))
	for n, w := range i.words {
		words[n] = ^w
	}
	if len(words) > 0 {
		words[len(words)-1] &= mathutil.TopMask(i.width)
	}
	return Int{width: i.width, words: words}
}

func (i Int) combine(other Int, op func(a, b uint64) uint64) Int {
	words := make([]uint64, len(i.words))
	for n, w := range i.words {
		words[n] = op(w, other.words[n])
	}
	return Int{width: i.width, words: words}
}

func (i Int) mustMatch(other Int, op string) {
	if i.width != other.width {
		panic(fmt.Sprintf("nbit: %s of %d-bit and %d-bit values", op, i.width, other.width))
	}
}

// wrapInt64 brings r back into the 'width'-bit range by adding or subtracting 2^width once.
// width must be less than 64.
func wrapInt64(r int64, width int) int64 {
	limit := int64(1) << uint(width-1)
	switch {
	case r >= limit:
		r -= limit << 1
	case r < -limit:
		r += limit << 1
	}
	return r
}

func fromWrapped(r *big.Int, width int) Int {
	switch {
	case r.Cmp(maxValue(width)) > 0:
		r.Sub(r, pow2(width))
	case r.Cmp(minValue(width)) < 0:
		r.Add(r, pow2(width))
	}
	v, err := NewFromBig(r, width)
	if err != nil { // a sum of two n-bit values is never off by more than 2^width.
		panic(err)
	}
	return v
}
