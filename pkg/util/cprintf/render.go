// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/cprintf/pkg/util/textenc"
	"github.com/cockroachdb/errors"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// pointerDigits is the number of hex digits %p prints.
const pointerDigits = 2 * int(unsafe.Sizeof(uintptr(0)))

var (
	nullText    = []rune("(null)")
	nullPointer = []rune("(nil)")
)

// renderer replays a format string into a writer.
type renderer struct {
	r textenc.Reader
	w textenc.Writer
	// scratch holds the text of the conversion being rendered.
	scratch []rune
}

// render copies the literal runs of the format and the rendered
// conversions to the writer, then terminates the output with a NUL.
func (rd *renderer) render(specs []FormatSpec, args []arg) error {
	rd.r.Reset()
	for i := range specs {
		s := &specs[i]
		rd.copyLiteral(s.CopyRun)
		if err := rd.conversion(s, &args[i]); err != nil {
			return err
		}
		rd.skip(s.FmtSkip)
	}
	for {
		c, ok := rd.r.Next()
		if !ok {
			break
		}
		rd.w.Put(c)
	}
	rd.w.Put(0)
	return nil
}

func (rd *renderer) copyLiteral(n int) {
	for ; n > 0; n-- {
		c, ok := rd.r.Next()
		if !ok {
			return
		}
		rd.w.Put(c)
	}
}

func (rd *renderer) skip(n int) {
	for ; n > 0; n-- {
		if _, ok := rd.r.Next(); !ok {
			return
		}
	}
}

func (rd *renderer) conversion(s *FormatSpec, a *arg) error {
	b := rd.scratch[:0]
	switch a.kind {
	case kindNone:
		rd.w.Put('%')
		return nil

	case kindInt:
		b = appendSign(b, a.i < 0, s)
		zeroAt := len(b)
		mag := uint64(a.i)
		if a.i < 0 {
			mag = -mag
		}
		b = appendDigits(b, mag, 10, false, a.precision)
		rd.pad(b, zeroAt, a, a.precision < 0)

	case kindUint:
		var base uint64
		switch s.Conversion {
		case ConvOctal:
			base = 8
		case ConvHex:
			base = 16
		default:
			base = 10
		}
		if s.BasePrefix && base == 16 && a.u != 0 {
			if s.Uppercase {
				b = append(b, '0', 'X')
			} else {
				b = append(b, '0', 'x')
			}
		}
		zeroAt := len(b)
		start := len(b)
		b = appendDigits(b, a.u, base, s.Uppercase, a.precision)
		if s.BasePrefix && base == 8 && (len(b) == start || b[start] != '0') {
			b = append(b, 0)
			copy(b[start+1:], b[start:])
			b[start] = '0'
		}
		rd.pad(b, zeroAt, a, a.precision < 0)

	case kindFloat:
		switch {
		case math.IsInf(a.f, 0) || math.IsNaN(a.f):
			b = appendNonFinite(b, a.f, s)
			rd.pad(b, 0, a, false)
		case s.Conversion == ConvFloatHex:
			var zeroAt int
			b, zeroAt, _ = appendHexFloat(b, float64Layout, math.Float64bits(a.f), s, a.precision)
			rd.pad(b, zeroAt, a, true)
		default:
			rd.putString(decimalFloat(a.f, s, a.width, a.precision, a.left))
		}

	case kindChar:
		b = append(b, rune(a.i))
		rd.pad(b, 0, a, false)

	case kindText:
		a.text.Reset()
		for n := 0; a.precision < 0 || n < a.precision; n++ {
			c, ok := a.text.Next()
			// The text ends at the first NUL, as a C string does.
			if !ok || c == 0 {
				break
			}
			b = append(b, c)
		}
		rd.pad(b, 0, a, false)

	case kindNullText:
		rd.pad(append(b, nullText...), 0, a, false)

	case kindPointer:
		b = append(b, '0', 'x')
		b = appendDigits(b, a.u, 16, false, pointerDigits)
		rd.pad(b, 0, a, false)

	case kindNullPointer:
		rd.pad(append(b, nullPointer...), 0, a, false)

	case kindCount:
		a.count(rd.w.Total())

	case kindErrno:
		text := []rune(errnoText(a.errno, s.BasePrefix))
		if a.precision >= 0 && a.precision < len(text) {
			text = text[:a.precision]
		}
		rd.pad(append(b, text...), 0, a, false)

	default:
		return errors.AssertionFailedf("unexpected argument kind %d for %s", a.kind, s)
	}
	rd.scratch = b
	return nil
}

// pad writes text to the writer within the field width. Zeros go at
// zeroAt, after any sign or base prefix, when the '0' flag applies; spaces
// go on the left, or on the right when left justified.
func (rd *renderer) pad(text []rune, zeroAt int, a *arg, zeroOK bool) {
	fill := a.width - len(text)
	switch {
	case fill <= 0:
		rd.putRunes(text)
	case a.left:
		rd.putRunes(text)
		rd.repeat(' ', fill)
	case zeroOK && a.padZero:
		rd.putRunes(text[:zeroAt])
		rd.repeat('0', fill)
		rd.putRunes(text[zeroAt:])
	default:
		rd.repeat(' ', fill)
		rd.putRunes(text)
	}
}

func (rd *renderer) putRunes(text []rune) {
	for _, c := range text {
		rd.w.Put(c)
	}
}

func (rd *renderer) putString(text string) {
	for _, c := range text {
		rd.w.Put(c)
	}
}

func (rd *renderer) repeat(c rune, n int) {
	for ; n > 0; n-- {
		rd.w.Put(c)
	}
}

// appendSign appends the sign character of a number, if any.
func appendSign(b []rune, neg bool, s *FormatSpec) []rune {
	switch {
	case neg:
		return append(b, '-')
	case s.PlusSign:
		return append(b, '+')
	case s.SpacePrefix:
		return append(b, ' ')
	}
	return b
}

// appendDigits appends u in the given base with at least prec digits. A
// zero value with a zero precision has no digits at all.
func appendDigits(b []rune, u uint64, base uint64, upper bool, prec int) []rune {
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	var buf [64]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = digits[u%base]
		u /= base
	}
	n := len(buf) - i
	if prec < 0 {
		prec = 1
	}
	for ; n < prec; n++ {
		b = append(b, '0')
	}
	for _, c := range buf[i:] {
		b = append(b, rune(c))
	}
	return b
}
