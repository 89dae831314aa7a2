// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"strconv"

	"github.com/cockroachdb/redact"
)

// FromArg is the Width or Precision of a specifier that reads the value
// from the argument list ('*').
const FromArg = -2

// maxField bounds widths, precisions and explicit parameter numbers while
// their digits are accumulated.
const maxField = 1 << 24

// Conversion is the kind of value a specifier renders.
type Conversion int8

const (
	// ConvNone is the literal "%%".
	ConvNone Conversion = iota
	// ConvInt is %d and %i.
	ConvInt
	// ConvOctal is %o.
	ConvOctal
	// ConvUint is %u.
	ConvUint
	// ConvHex is %x and %X.
	ConvHex
	// ConvFloat is %f and %F.
	ConvFloat
	// ConvFloatExp is %e and %E.
	ConvFloatExp
	// ConvFloatGeneral is %g and %G.
	ConvFloatGeneral
	// ConvFloatHex is %a and %A.
	ConvFloatHex
	// ConvChar is %c and %C.
	ConvChar
	// ConvString is %s and %S.
	ConvString
	// ConvPointer is %p.
	ConvPointer
	// ConvGetNum is %n.
	ConvGetNum
	// ConvErrno is %m.
	ConvErrno
)

var conversionNames = [...]string{
	ConvNone:         "none",
	ConvInt:          "int",
	ConvOctal:        "octal",
	ConvUint:         "uint",
	ConvHex:          "hex",
	ConvFloat:        "float",
	ConvFloatExp:     "float-exp",
	ConvFloatGeneral: "float-general",
	ConvFloatHex:     "float-hex",
	ConvChar:         "char",
	ConvString:       "string",
	ConvPointer:      "pointer",
	ConvGetNum:       "getnum",
	ConvErrno:        "errno",
}

func (c Conversion) String() string {
	if c < 0 || int(c) >= len(conversionNames) {
		return "Conversion(" + strconv.Itoa(int(c)) + ")"
	}
	return conversionNames[c]
}

// SafeValue implements the redact.SafeValue interface.
func (Conversion) SafeValue() {}

// consumesArg returns whether the conversion takes a value from the
// argument list.
func (c Conversion) consumesArg() bool {
	return c != ConvNone && c != ConvErrno
}

// isFloat returns whether the conversion renders a floating-point value.
func (c Conversion) isFloat() bool {
	switch c {
	case ConvFloat, ConvFloatExp, ConvFloatGeneral, ConvFloatHex:
		return true
	}
	return false
}

// SizeClass is the argument size selected by a length modifier.
type SizeClass int8

const (
	// TypeDefault is an int (no modifier).
	TypeDefault SizeClass = iota
	// TypeChar is hh.
	TypeChar
	// TypeShort is h.
	TypeShort
	// TypeLong is l, and the wide flavor of %c and %s.
	TypeLong
	// TypeLongLong is ll, L, q and I64.
	TypeLongLong
	// TypeIntmax is j.
	TypeIntmax
	// TypePtrdiff is t.
	TypePtrdiff
	// TypeSizeT is z.
	TypeSizeT
)

var sizeClassModifiers = [...]string{
	TypeDefault:  "",
	TypeChar:     "hh",
	TypeShort:    "h",
	TypeLong:     "l",
	TypeLongLong: "ll",
	TypeIntmax:   "j",
	TypePtrdiff:  "t",
	TypeSizeT:    "z",
}

// bits returns the width in bits of the integer type the class denotes.
// int and the C long types follow an LP64 data model.
func (t SizeClass) bits() uint {
	switch t {
	case TypeChar:
		return 8
	case TypeShort:
		return 16
	case TypeDefault:
		return 32
	default:
		return 64
	}
}

func (t SizeClass) String() string {
	if t < 0 || int(t) >= len(sizeClassModifiers) {
		return "SizeClass(" + strconv.Itoa(int(t)) + ")"
	}
	if t == TypeDefault {
		return "int"
	}
	return sizeClassModifiers[t]
}

// SafeValue implements the redact.SafeValue interface.
func (SizeClass) SafeValue() {}

// FormatSpec describes one conversion specifier of a format string,
// together with the literal text that precedes it.
type FormatSpec struct {
	// CopyRun is the number of literal characters between the end of the
	// previous specifier (or the start of the format) and this one.
	CopyRun int
	// FmtSkip is the number of characters of specifier syntax, including
	// the leading '%'.
	FmtSkip int
	// Offset is the position of the leading '%' in code units of the
	// format string.
	Offset int
	// ParamIdx is the zero-based index of the argument rendered by this
	// specifier, or -1 for conversions that do not take one.
	ParamIdx int
	// ExplicitParam is set when ParamIdx was given as "%N$".
	ExplicitParam bool

	LeftJustify bool
	PlusSign    bool
	SpacePrefix bool
	BasePrefix  bool
	PadZero     bool
	// Grouping is the "'" flag. It is accepted and ignored.
	Grouping bool

	// Width is the minimum field width, or FromArg.
	Width int
	// Precision is -1 when unspecified, or FromArg.
	Precision int

	Conversion Conversion
	Uppercase  bool
	Type       SizeClass
}

// String renders the specifier in its canonical form, e.g. "%2$-08.3lld".
func (s FormatSpec) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (s FormatSpec) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(s.appendText(nil)))
}

func (s FormatSpec) appendText(b []byte) []byte {
	b = append(b, '%')
	if s.Conversion == ConvNone {
		return append(b, '%')
	}
	if s.ExplicitParam {
		b = strconv.AppendInt(b, int64(s.ParamIdx+1), 10)
		b = append(b, '$')
	}
	for _, f := range []struct {
		set bool
		c   byte
	}{
		{s.LeftJustify, '-'},
		{s.PlusSign, '+'},
		{s.SpacePrefix, ' '},
		{s.BasePrefix, '#'},
		{s.PadZero, '0'},
		{s.Grouping, '\''},
	} {
		if f.set {
			b = append(b, f.c)
		}
	}
	switch {
	case s.Width == FromArg:
		b = append(b, '*')
	case s.Width > 0:
		b = strconv.AppendInt(b, int64(s.Width), 10)
	}
	switch {
	case s.Precision == FromArg:
		b = append(b, '.', '*')
	case s.Precision >= 0:
		b = append(b, '.')
		b = strconv.AppendInt(b, int64(s.Precision), 10)
	}
	b = append(b, sizeClassModifiers[s.Type]...)
	return append(b, s.letter())
}

// letter returns the canonical conversion letter.
func (s FormatSpec) letter() byte {
	var c byte
	switch s.Conversion {
	case ConvInt:
		c = 'd'
	case ConvOctal:
		c = 'o'
	case ConvUint:
		c = 'u'
	case ConvHex:
		c = 'x'
	case ConvFloat:
		c = 'f'
	case ConvFloatExp:
		c = 'e'
	case ConvFloatGeneral:
		c = 'g'
	case ConvFloatHex:
		c = 'a'
	case ConvChar:
		c = 'c'
	case ConvString:
		c = 's'
	case ConvPointer:
		c = 'p'
	case ConvGetNum:
		c = 'n'
	case ConvErrno:
		c = 'm'
	default:
		return '?'
	}
	if s.Uppercase {
		c -= 'a' - 'A'
	}
	return c
}
