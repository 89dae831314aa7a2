// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"unicode/utf8"

	"github.com/cockroachdb/cprintf/pkg/util/textenc"
	"github.com/cockroachdb/errors"
)

// parseState is the state of the specifier scanner. Each name lists what
// the scanner accepts next.
type parseState int8

const (
	scanFormat parseState = iota
	paramOrFlagsOrWidthOrPrecOrTypeOrConv
	flagsOrWidthOrPrecOrTypeOrConv
	paramWidth
	dotPrecOrTypeOrConv
	precOrTypeOrConv
	typeOrConv
)

// parser turns a format string into FormatSpecs. It is fed one code point
// at a time.
type parser struct {
	specs []FormatSpec
	state parseState
	cur   FormatSpec

	// literal counts the characters since the end of the last specifier.
	literal int
	// fmtLen counts the characters of the specifier being scanned,
	// including its '%'.
	fmtLen int
	// nextParam is the implicit parameter counter.
	nextParam int

	sawFlags   bool
	precDigits bool
	// i64 tracks progress through the "I64" length modifier: 1 after 'I',
	// 2 after "I6".
	i64 int
}

// parseSpecs scans the whole input of r and returns its specifiers.
func parseSpecs(r textenc.Reader) []FormatSpec {
	var p parser
	r.Reset()
	for {
		pos := r.Position()
		c, ok := r.Next()
		if !ok {
			break
		}
		p.step(c, pos)
	}
	return p.specs
}

// Parse returns the specifiers of a format string. Malformed specifiers are
// not an error: they are treated as literal text and do not show up in the
// result. An error is returned if format is not valid UTF-8, since the
// formatter stops at the first invalid sequence.
func Parse(format string) ([]FormatSpec, error) {
	if !utf8.ValidString(format) {
		for i := 0; i < len(format); {
			c, size := utf8.DecodeRuneInString(format[i:])
			if c == utf8.RuneError && size <= 1 {
				return nil, errors.Newf("format is not valid UTF-8 at byte %d", i)
			}
			i += size
		}
	}
	return parseSpecs(textenc.NewStringReader(format)), nil
}

func (p *parser) step(c rune, pos int) {
	if p.state == scanFormat {
		if c == '%' {
			p.begin(pos)
		} else {
			p.literal++
		}
		return
	}

	atStart := p.fmtLen == 1
	p.fmtLen++
	for {
		switch p.state {
		case paramOrFlagsOrWidthOrPrecOrTypeOrConv:
			if c == '%' && atStart {
				p.cur.Conversion = ConvNone
				p.finish()
				return
			}
			if c >= '1' && c <= '9' {
				p.cur.Width = int(c - '0')
				p.state = paramWidth
				return
			}
			p.state = flagsOrWidthOrPrecOrTypeOrConv

		case flagsOrWidthOrPrecOrTypeOrConv:
			if p.parseFlag(c) {
				p.sawFlags = true
				return
			}
			if c >= '1' && c <= '9' {
				p.cur.Width = int(c - '0')
				p.state = paramWidth
				return
			}
			if c == '*' {
				p.cur.Width = FromArg
				p.state = dotPrecOrTypeOrConv
				return
			}
			p.state = dotPrecOrTypeOrConv

		case paramWidth:
			if isDigit(c) {
				p.cur.Width = accumulate(p.cur.Width, c)
				return
			}
			if c == '$' {
				// Only digits directly after the '%' can name a parameter, and
				// only once.
				if p.cur.ExplicitParam || p.sawFlags {
					p.fail()
					return
				}
				p.cur.ParamIdx = p.cur.Width - 1
				p.cur.ExplicitParam = true
				p.cur.Width = 0
				p.state = flagsOrWidthOrPrecOrTypeOrConv
				return
			}
			p.state = dotPrecOrTypeOrConv

		case dotPrecOrTypeOrConv:
			if c == '.' {
				p.cur.Precision = 0
				p.state = precOrTypeOrConv
				return
			}
			p.state = typeOrConv

		case precOrTypeOrConv:
			if isDigit(c) {
				p.cur.Precision = accumulate(p.cur.Precision, c)
				p.precDigits = true
				return
			}
			if c == '*' && !p.precDigits {
				p.cur.Precision = FromArg
				p.state = typeOrConv
				return
			}
			p.state = typeOrConv

		case typeOrConv:
			if handled, ok := p.parseType(c); handled {
				if !ok {
					p.fail()
				}
				return
			}
			if p.parseConversion(c) {
				p.finish()
			} else {
				p.fail()
			}
			return

		default:
			panic(errors.AssertionFailedf("unexpected parser state %d", p.state))
		}
	}
}

// begin starts a new specifier at the '%' found at pos.
func (p *parser) begin(pos int) {
	p.cur = FormatSpec{Offset: pos, Precision: -1}
	p.fmtLen = 1
	p.sawFlags = false
	p.precDigits = false
	p.i64 = 0
	p.state = paramOrFlagsOrWidthOrPrecOrTypeOrConv
}

// finish records the current specifier.
func (p *parser) finish() {
	p.cur.CopyRun = p.literal
	p.cur.FmtSkip = p.fmtLen
	switch {
	case !p.cur.Conversion.consumesArg():
		p.cur.ParamIdx = -1
		p.cur.ExplicitParam = false
	case !p.cur.ExplicitParam:
		p.cur.ParamIdx = p.nextParam
		p.nextParam++
	}
	p.specs = append(p.specs, p.cur)
	p.literal = 0
	p.state = scanFormat
}

// fail abandons the current specifier. Everything it consumed, including
// the character that broke it, becomes literal text.
func (p *parser) fail() {
	p.literal += p.fmtLen
	p.state = scanFormat
}

func (p *parser) parseFlag(c rune) bool {
	switch c {
	case '-':
		p.cur.LeftJustify = true
	case '+':
		p.cur.PlusSign = true
	case ' ':
		p.cur.SpacePrefix = true
	case '#':
		p.cur.BasePrefix = true
	case '0':
		p.cur.PadZero = true
	case '\'':
		p.cur.Grouping = true
	default:
		return false
	}
	return true
}

// parseType consumes length modifiers. handled reports whether c was part
// of a modifier; ok is false if the modifier conflicts with an earlier one
// or "I64" was misspelled.
func (p *parser) parseType(c rune) (handled, ok bool) {
	if p.i64 > 0 {
		switch {
		case p.i64 == 1 && c == '6':
			p.i64 = 2
			return true, true
		case p.i64 == 2 && c == '4':
			p.i64 = 0
			p.cur.Type = TypeLongLong
			return true, true
		}
		return true, false
	}

	t := p.cur.Type
	switch c {
	case 'h':
		switch t {
		case TypeDefault:
			p.cur.Type = TypeShort
		case TypeShort:
			p.cur.Type = TypeChar
		default:
			return true, false
		}
	case 'l':
		switch t {
		case TypeDefault:
			p.cur.Type = TypeLong
		case TypeLong:
			p.cur.Type = TypeLongLong
		default:
			return true, false
		}
	case 'L', 'q', 'j', 't', 'z', 'I':
		if t != TypeDefault {
			return true, false
		}
		switch c {
		case 'L', 'q':
			p.cur.Type = TypeLongLong
		case 'j':
			p.cur.Type = TypeIntmax
		case 't':
			p.cur.Type = TypePtrdiff
		case 'z':
			p.cur.Type = TypeSizeT
		case 'I':
			p.i64 = 1
		}
	default:
		return false, false
	}
	return true, true
}

func (p *parser) parseConversion(c rune) bool {
	conv := ConvNone
	upper := false
	switch c {
	case 'd', 'i':
		conv = ConvInt
	case 'o':
		conv = ConvOctal
	case 'u':
		conv = ConvUint
	case 'x', 'X':
		conv, upper = ConvHex, c == 'X'
	case 'f', 'F':
		conv, upper = ConvFloat, c == 'F'
	case 'e', 'E':
		conv, upper = ConvFloatExp, c == 'E'
	case 'g', 'G':
		conv, upper = ConvFloatGeneral, c == 'G'
	case 'a', 'A':
		conv, upper = ConvFloatHex, c == 'A'
	case 'c', 'C':
		conv = ConvChar
	case 's', 'S':
		conv = ConvString
	case 'p':
		conv = ConvPointer
	case 'n':
		conv = ConvGetNum
	case 'm':
		conv = ConvErrno
	default:
		return false
	}
	if (c == 'C' || c == 'S') && p.cur.Type == TypeDefault {
		p.cur.Type = TypeLong
	}
	p.cur.Conversion = conv
	p.cur.Uppercase = upper
	return true
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func accumulate(v int, c rune) int {
	v = v*10 + int(c-'0')
	if v > maxField {
		v = maxField
	}
	return v
}
