// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"fmt"
	"math"
	"strconv"
)

// ieeeLayout describes an IEEE-754 binary interchange format.
type ieeeLayout struct {
	mantissaBits uint
	exponentBits uint
	bias         int
}

// Formatting only uses float64Layout: float arguments are promoted to
// float64 the way C promotes them through varargs. float32Layout exists to
// test the split against a second layout.
var (
	float32Layout = ieeeLayout{mantissaBits: 23, exponentBits: 8, bias: 127}
	float64Layout = ieeeLayout{mantissaBits: 52, exponentBits: 11, bias: 1023}
)

// hexParts is a finite value split for hex-float output: the value is
// lead.frac * 2^exp, where frac holds nibbles hex digits.
type hexParts struct {
	neg     bool
	lead    uint64
	frac    uint64
	nibbles int
	exp     int
}

// split decomposes the bit pattern of a value in this layout. ok is false
// for infinities and NaNs, which have no hex form.
func (l ieeeLayout) split(bits uint64) (parts hexParts, ok bool) {
	mantMask := uint64(1)<<l.mantissaBits - 1
	expMask := uint64(1)<<l.exponentBits - 1
	biased := (bits >> l.mantissaBits) & expMask
	mant := bits & mantMask
	parts.neg = (bits>>(l.mantissaBits+l.exponentBits))&1 == 1
	if biased == expMask {
		return parts, false
	}

	parts.nibbles = int(l.mantissaBits+3) / 4
	// Align the mantissa on a nibble boundary.
	parts.frac = mant << (uint(parts.nibbles)*4 - l.mantissaBits)
	switch {
	case biased == 0 && mant == 0:
		parts.lead, parts.exp = 0, 0
	case biased == 0:
		// Denormals have no implicit leading bit and the smallest exponent.
		parts.lead, parts.exp = 0, 1-l.bias
	default:
		parts.lead, parts.exp = 1, int(biased)-l.bias
	}
	return parts, true
}

// round keeps prec fractional nibbles, rounding half to even. The leading
// digit may carry into 2.
func (h *hexParts) round(prec int) {
	if prec >= h.nibbles {
		return
	}
	drop := uint(h.nibbles-prec) * 4
	full := h.lead<<(uint(h.nibbles)*4) | h.frac
	rem := full & (uint64(1)<<drop - 1)
	full >>= drop
	half := uint64(1) << (drop - 1)
	if rem > half || (rem == half && full&1 == 1) {
		full++
	}
	keep := uint(prec) * 4
	h.lead = full >> keep
	h.frac = full & (uint64(1)<<keep - 1)
	h.nibbles = prec
}

// trim drops trailing zero nibbles.
func (h *hexParts) trim() {
	for h.nibbles > 0 && h.frac&0xf == 0 {
		h.frac >>= 4
		h.nibbles--
	}
}

// appendHexFloat renders the %a form of bits without padding, returning
// the text and the offset at which zero padding belongs.
func appendHexFloat(
	b []rune, l ieeeLayout, bits uint64, s *FormatSpec, prec int,
) (_ []rune, zeroAt int, ok bool) {
	h, ok := l.split(bits)
	if !ok {
		return b, 0, false
	}
	digits, x, p := lowerDigits, 'x', 'p'
	if s.Uppercase {
		digits, x, p = upperDigits, 'X', 'P'
	}
	b = appendSign(b, h.neg, s)
	b = append(b, '0', x)
	zeroAt = len(b)

	if prec >= 0 {
		h.round(prec)
	} else {
		h.trim()
	}
	b = append(b, rune(digits[h.lead]))
	if h.nibbles > 0 || prec > 0 || s.BasePrefix {
		b = append(b, '.')
	}
	for i := h.nibbles - 1; i >= 0; i-- {
		b = append(b, rune(digits[(h.frac>>(uint(i)*4))&0xf]))
	}
	for i := h.nibbles; i < prec; i++ {
		b = append(b, '0')
	}

	b = append(b, p)
	if h.exp >= 0 {
		b = append(b, '+')
	}
	for _, c := range strconv.Itoa(h.exp) {
		b = append(b, c)
	}
	return b, zeroAt, true
}

// appendNonFinite renders an infinity or NaN the way every float
// conversion does.
func appendNonFinite(b []rune, f float64, s *FormatSpec) []rune {
	b = appendSign(b, math.Signbit(f), s)
	text := "inf"
	switch {
	case math.IsNaN(f) && s.Uppercase:
		text = "NAN"
	case math.IsNaN(f):
		text = "nan"
	case s.Uppercase:
		text = "INF"
	}
	for _, c := range text {
		b = append(b, c)
	}
	return b
}

// decimalFloat renders %f, %e and %g through the fmt package, which
// implements the same flags, width and precision rules.
func decimalFloat(f float64, s *FormatSpec, width, prec int, left bool) string {
	verb := make([]byte, 0, 16)
	verb = append(verb, '%')
	if left {
		verb = append(verb, '-')
	}
	if s.PlusSign {
		verb = append(verb, '+')
	}
	if s.SpacePrefix {
		verb = append(verb, ' ')
	}
	if s.BasePrefix {
		verb = append(verb, '#')
	}
	if s.PadZero {
		verb = append(verb, '0')
	}
	if width > 0 {
		verb = strconv.AppendInt(verb, int64(width), 10)
	}
	if prec < 0 {
		prec = 6
	}
	verb = append(verb, '.')
	verb = strconv.AppendInt(verb, int64(prec), 10)

	var c byte
	switch s.Conversion {
	case ConvFloat:
		c = 'f'
	case ConvFloatExp:
		c = 'e'
	default:
		c = 'g'
	}
	if s.Uppercase && c != 'f' {
		c -= 'a' - 'A'
	}
	return fmt.Sprintf(string(append(verb, c)), f)
}
