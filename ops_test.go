// Copyright 2020 Aleksandr Demakin. All rights reserved.

package nbit

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddSub(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y     int64
		width    int
		sum, sub int64
	}{
		{0, 0, 8, 0, 0},
		{5, -5, 8, 0, 10},
		{127, 1, 8, -128, 126},
		{-128, -1, 8, 127, -127},
		{-128, 1, 8, -127, 127},
		{127, -1, 8, 126, -128},
		{127, 127, 8, -2, 0},
		{-128, -128, 8, 0, 0},
		{0, -1, 1, -1, -1},
		{-1, -1, 1, 0, 0},
		{1<<62 - 1, 1, 63, -1 << 62, 1<<62 - 2},
		{math.MaxInt64, 1, 64, math.MinInt64, math.MaxInt64 - 1},
		{math.MinInt64, 1, 64, math.MinInt64 + 1, math.MaxInt64},
		{math.MinInt64, math.MinInt64, 64, 0, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := MustNew(test.x, test.width), MustNew(test.y, test.width)
			sum, sub := x.Add(y), x.Sub(y)
			a.True(MustNew(test.sum, test.width).Eq(sum), "%d + %d = %s", test.x, test.y, sum)
			a.True(MustNew(test.sub, test.width).Eq(sub), "%d - %d = %s", test.x, test.y, sub)
			a.Equal(test.width, sum.Width())
		})
	}
}

func TestAddWide(t *testing.T) {
	a := assert.New(t)
	const width = 100
	min := minInt(width)
	max := MustNew(-1, width).Xor(min)
	a.Equal("0"+strings.Repeat("1", width-1), max.BinaryString())
	a.True(min.Eq(max.Add(MustNew(1, width))))
	a.True(max.Eq(min.Sub(MustNew(1, width))))
	a.True(min.Eq(max.Inc()))
	a.True(max.Eq(min.Dec()))
	a.True(MustNew(-2, width).Eq(max.Add(max)))
	a.True(MustNew(0, width).Eq(min.Add(min)))
}

func minInt(width int) Int {
	v, err := NewFromBig(minValue(width), width)
	if err != nil {
		panic(err)
	}
	return v
}

// TestAddRandom compares wraparound arithmetic with arithmetic modulo 2^width.
func TestAddRandom(t *testing.T) {
	a := assert.New(t)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, width := range []int{3, 17, 63, 64, 65, 128, 200} {
		for n := 0; n < 200; n++ {
			x, y := randInt(r, width), randInt(r, width)
			a.Equal(0, modAdd(x.Value(), y.Value(), width).Cmp(x.Add(y).Value()), "%s + %s, %d bits", x, y, width)
			neg := new(big.Int).Neg(y.Value())
			a.Equal(0, modAdd(x.Value(), neg, width).Cmp(x.Sub(y).Value()), "%s - %s, %d bits", x, y, width)
			a.True(x.Eq(x.Add(y).Sub(y)))
		}
	}
}

func randInt(r *rand.Rand, width int) Int {
	u := new(big.Int).Rand(r, pow2(width))
	if u.Cmp(maxValue(width)) > 0 {
		u.Sub(u, pow2(width))
	}
	return mustFromBig(u, width)
}

func mustFromBig(v *big.Int, width int) Int {
	i, err := NewFromBig(v, width)
	if err != nil {
		panic(err)
	}
	return i
}

// modAdd returns x+y reduced to the signed range of 'width' bits.
func modAdd(x, y *big.Int, width int) *big.Int {
	s := new(big.Int).Add(x, y)
	s.Mod(s, pow2(width))
	if s.Cmp(maxValue(width)) > 0 {
		s.Sub(s, pow2(width))
	}
	return s
}

func TestBitwise(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y         int64
		width        int
		and, or, xor int64
		not          int64
	}{
		{12, 10, 8, 8, 14, 6, -13},
		{-1, 5, 8, 5, -1, -6, 0},
		{-8, 3, 8, 0, -5, -5, 7},
		{-128, 127, 8, 0, -1, -1, 127},
		{0, 0, 8, 0, 0, 0, -1},
		{0, -1, 1, 0, -1, -1, -1},
		{math.MinInt64, -1, 64, math.MinInt64, -1, math.MaxInt64, math.MaxInt64},
		{-1, 1, 70, 1, -1, -2, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := MustNew(test.x, test.width), MustNew(test.y, test.width)
			a.True(MustNew(test.and, test.width).Eq(x.And(y)), "and: %s", x.And(y))
			a.True(MustNew(test.or, test.width).Eq(x.Or(y)), "or: %s", x.Or(y))
			a.True(MustNew(test.xor, test.width).Eq(x.Xor(y)), "xor: %s", x.Xor(y))
			a.True(MustNew(test.not, test.width).Eq(x.Not()), "not: %s", x.Not())
			a.True(x.Eq(x.Not().Not()))
		})
	}
}

// TestBitwiseSmall checks that the bitwise operations on bits
// match the same operations on the signed values.
func TestBitwiseSmall(t *testing.T) {
	a := assert.New(t)
	for width := 1; width <= 6; width++ {
		limit := int64(1) << uint(width-1)
		for x := -limit; x < limit; x++ {
			for y := -limit; y < limit; y++ {
				bx, by := MustNew(x, width), MustNew(y, width)
				a.True(MustNew(x&y, width).Eq(bx.And(by)))
				a.True(MustNew(x|y, width).Eq(bx.Or(by)))
				a.True(MustNew(x^y, width).Eq(bx.Xor(by)))
			}
			a.True(MustNew(-x-1, width).Eq(MustNew(x, width).Not()))
		}
	}
}

func TestIncDec(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v        int64
		width    int
		inc, dec int64
	}{
		{0, 8, 1, -1},
		{127, 8, -128, 126},
		{-128, 8, -127, 127},
		{0, 1, -1, -1},
		{-1, 1, 0, 0},
		{math.MaxInt64, 64, math.MinInt64, math.MaxInt64 - 1},
		{math.MinInt64, 64, math.MinInt64 + 1, math.MaxInt64},
		{-1, 80, 0, -2},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v := MustNew(test.v, test.width)
			a.True(MustNew(test.inc, test.width).Eq(v.Inc()), "inc: %s", v.Inc())
			a.True(MustNew(test.dec, test.width).Eq(v.Dec()), "dec: %s", v.Dec())
		})
	}
}

func TestWidthMismatch(t *testing.T) {
	a := assert.New(t)
	x, y := MustNew(1, 8), MustNew(1, 16)
	a.PanicsWithValue("nbit: Add of 8-bit and 16-bit values", func() { x.Add(y) })
	a.Panics(func() { x.Sub(y) })
	a.Panics(func() { x.And(y) })
	a.Panics(func() { x.Or(y) })
	a.Panics(func() { x.Xor(y) })
	a.Panics(func() { Evaluate(x, y) })
}

func TestImmutable(t *testing.T) {
	a := assert.New(t)
	x, y := MustNew(100, 8), MustNew(100, 8)
	x.Add(y)
	x.Not()
	x.Xor(y)
	x.Inc()
	a.Equal("100", x.String())
	a.Equal("100", y.String())
}

func BenchmarkAdd8(b *testing.B) {
	x, y := MustNew(100, 8), MustNew(27, 8)
	for i := 0; i < b.N; i++ {
		x.Add(y)
	}
}

func BenchmarkAdd128(b *testing.B) {
	x, y := MustNew(math.MaxInt64, 128), MustNew(math.MinInt64, 128)
	for i := 0; i < b.N; i++ {
		x.Add(y)
	}
}
