// Copyright 2020 Aleksandr Demakin. All rights reserved.

package nbit

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/avdva/nbit/internal/mathutil"
	"github.com/avdva/nbit/internal/strutil"
	"github.com/avdva/nbit/numerr"
)

const (
	hexDigits = "0123456789ABCDEF"

	binaryGroup  = 4
	hexGroup     = 2
	decimalGroup = 3
)

func isBit(r rune) bool {
	return r == '0' || r == '1'
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// FromBitString parses a string of '0' and '1' symbols.
// Whitespace is ignored, and the number of bits defines the width.
// The leading bit is the sign bit, so "1010" is -6.
func FromBitString(s string) (Int, error) {
	bits, err := strutil.Scan(s, isBit, unicode.IsSpace)
	if err != nil {
		return Int{}, numerr.Wrap(numerr.Format, s, fmt.Errorf("invalid binary string: %w", err))
	}
	width := len(bits)
	words := make([]uint64, mathutil.Words(width))
	for n := 0; n < width; n++ {
		if bits[n] == '1' {
			pos := width - 1 - n
			words[pos/mathutil.WordBits] |= 1 << uint(pos%mathutil.WordBits)
		}
	}
	return Int{width: width, words: words}, nil
}

// MustFromBitString is like FromBitString, but panics on error.
func MustFromBitString(s string) Int {
	i, err := FromBitString(s)
	if err != nil {
		panic(err)
	}
	return i
}

// FromDecimalString parses a signed decimal number.
// Commas and whitespace are ignored, so "-1,234" is accepted.
func FromDecimalString(s string, width int) (Int, error) {
	cleaned := strutil.Strip(s, strutil.IsSeparator)
	if len(cleaned) == 0 {
		return Int{}, numerr.New(numerr.Format, s, "invalid decimal number: empty input")
	}
	v, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		return Int{}, numerr.Newf(numerr.Format, s, "invalid decimal number %q", s)
	}
	return NewFromBig(v, width)
}

// FromHexString parses a hexadecimal bit pattern, the inverse of HexString.
// Whitespace and an optional leading "0x" prefix are ignored.
// The digits are the raw bits, so "FB" is -5 for 8 bits, and 251 for 9 bits.
// Returns a range error if the pattern needs more than 'width' bits.
func FromHexString(s string, width int) (Int, error) {
	if err := checkWidth(width); err != nil {
		return Int{}, err
	}
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	if len(rest) > 1 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		rest = rest[2:]
	}
	digits, err := strutil.Scan(rest, isHexDigit, unicode.IsSpace)
	if err != nil {
		err = strutil.AddPosOffset(err, utf8.RuneCountInString(s[:len(s)-len(rest)]))
		return Int{}, numerr.Wrap(numerr.Format, s, fmt.Errorf("invalid hexadecimal string: %w", err))
	}
	pattern, _ := new(big.Int).SetString(digits, 16)
	if pattern.BitLen() > width {
		return Int{}, numerr.Newf(numerr.Range, s, "hex value '%s' does not fit %d bits", strings.ToUpper(digits), width)
	}
	return fromPattern(pattern, width), nil
}

// BinaryString returns all the bits, the sign bit first.
func (i Int) BinaryString() string {
	var b strings.Builder
	b.Grow(i.width)
	for pos := i.width - 1; pos >= 0; pos-- {
		if i.rawBit(pos) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// FormattedBinaryString returns the bits split into groups of four,
// counting from the least significant bit, like "11 1111 1011".
func (i Int) FormattedBinaryString() string {
	return strutil.GroupRight(i.BinaryString(), binaryGroup, " ")
}

// HexString returns the bit pattern as an unsigned hexadecimal number,
// padded with zeros to ceil(width/4) digits, so -5 in 8 bits is "FB".
func (i Int) HexString() string {
	digits := mathutil.CeilDiv(i.width, 4)
	var b strings.Builder
	b.Grow(digits)
	for d := digits - 1; d >= 0; d-- {
		pos := d * 4
		nibble := i.words[pos/mathutil.WordBits] >> uint(pos%mathutil.WordBits) & 0xF
		b.WriteByte(hexDigits[nibble])
	}
	return b.String()
}

// FormattedHexString returns HexString split into groups of two digits,
// counting from the right.
func (i Int) FormattedHexString() string {
	return strutil.GroupRight(i.HexString(), hexGroup, " ")
}

// FormattedDecimalString returns the signed value with a comma
// after every three digits, like "-1,234,567".
func (i Int) FormattedDecimalString() string {
	v := i.Value()
	s := strutil.GroupRight(new(big.Int).Abs(v).String(), decimalGroup, ",")
	if v.Sign() < 0 {
		return "-" + s
	}
	return s
}

// String returns the signed decimal value.
func (i Int) String() string {
	return i.Value().String()
}

// GoString returns debug string representation.
func (i Int) GoString() string {
	return fmt.Sprintf("%s {%d bits: %s}", i.String(), i.width, i.BinaryString())
}

// Format implements fmt.Formatter.
// Supported verbs are 'b' for bits, 'x' and 'X' for hex, and 'd', 's', 'v' for decimal.
func (i Int) Format(fs fmt.State, c rune) {
	var s string
	switch c {
	case 'b':
		s = i.BinaryString()
	case 'x':
		s = strings.ToLower(i.HexString())
	case 'X':
		s = i.HexString()
	case 'd', 's':
		s = i.String()
	case 'v':
		if fs.Flag('#') {
			s = i.GoString()
		} else {
			s = i.String()
		}
	default:
		s = fmt.Sprintf("%%!%c(nbit.Int=%s)", c, i.String())
	}
	io.WriteString(fs, s)
}

// MarshalText returns the bits, so that JSON and other text encodings keep the width.
func (i Int) MarshalText() ([]byte, error) {
	return []byte(i.BinaryString()), nil
}

// UnmarshalText parses bits produced by MarshalText.
// Empty text produces the zero Int.
func (i *Int) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Int{}
		return nil
	}
	v, err := FromBitString(string(data))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
