// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/cockroachdb/cprintf/pkg/util/textenc"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// slot is the raw material of one parameter index: the value and any '*'
// width and precision consumed ahead of it.
type slot struct {
	value interface{}
	// pos is the 1-based position of value in the argument list.
	pos int

	width, precision       int
	hasWidth, hasPrecision bool
}

// bind walks args once, in ascending parameter index order, and returns one
// arg per spec. Each parameter index is owned by the first spec that names
// it: the owner decides whether '*' values precede the value in args.
func (p *Printer) bind(specs []FormatSpec, args []interface{}) ([]arg, error) {
	// Every index needs at least one argument. The check comes first so
	// that a large explicit index costs nothing when the arguments are
	// missing anyway.
	if n := ParamCount(specs); n > len(args) {
		return nil, missingArg(n, len(args))
	}
	owners := paramOwners(specs)

	slots := make([]slot, len(owners))
	next := 0
	take := func() (interface{}, int, error) {
		if next >= len(args) {
			return nil, 0, missingArg(next+1, len(args))
		}
		next++
		return args[next-1], next, nil
	}
	for idx, owner := range owners {
		sl := &slots[idx]
		if owner < 0 {
			// Nothing names this index; step over one argument.
			if _, _, err := take(); err != nil {
				return nil, err
			}
			continue
		}
		s := &specs[owner]
		if s.Width == FromArg {
			v, pos, err := take()
			if err != nil {
				return nil, err
			}
			if sl.width, err = starValue(s, v, pos, "width"); err != nil {
				return nil, err
			}
			sl.hasWidth = true
		}
		if s.Precision == FromArg {
			v, pos, err := take()
			if err != nil {
				return nil, err
			}
			if sl.precision, err = starValue(s, v, pos, "precision"); err != nil {
				return nil, err
			}
			sl.hasPrecision = true
		}
		var err error
		if sl.value, sl.pos, err = take(); err != nil {
			return nil, err
		}
	}

	bound := make([]arg, len(specs))
	for i := range specs {
		s := &specs[i]
		a := &bound[i]
		var sl *slot
		if s.ParamIdx >= 0 {
			sl = &slots[s.ParamIdx]
		}
		a.resolveField(s, sl)
		var err error
		switch s.Conversion {
		case ConvNone:
			a.kind = kindNone
		case ConvErrno:
			a.kind, a.errno = kindErrno, p.errno
		default:
			err = p.convert(a, s, sl.value, sl.pos)
		}
		if err != nil {
			return nil, err
		}
	}
	return bound, nil
}

// ParamCount returns the number of parameter indices specs span, which is
// the largest index named plus one. A call reads at least that many
// arguments.
func ParamCount(specs []FormatSpec) int {
	maxIdx := -1
	for i := range specs {
		if specs[i].ParamIdx > maxIdx {
			maxIdx = specs[i].ParamIdx
		}
	}
	return maxIdx + 1
}

// paramOwners maps each parameter index up to the largest one named to the
// first spec naming it, or -1.
func paramOwners(specs []FormatSpec) []int {
	owners := make([]int, ParamCount(specs))
	for i := range owners {
		owners[i] = -1
	}
	for i := range specs {
		if idx := specs[i].ParamIdx; idx >= 0 && owners[idx] < 0 {
			owners[idx] = i
		}
	}
	return owners
}

// ArgRole describes how one argument of a call is read.
type ArgRole struct {
	// Spec is the specifier the argument belongs to, or nil if no
	// specifier names its parameter index.
	Spec *FormatSpec
	// Star is "width" or "precision" when the argument is a '*' value of
	// Spec, and empty when it is the value Spec converts.
	Star string
}

// Layout returns the roles of the arguments specs consume, in the order
// the arguments are read. It returns at least ParamCount(specs) roles;
// callers holding fewer arguments than that can stop before calling it.
func Layout(specs []FormatSpec) []ArgRole {
	var roles []ArgRole
	for _, owner := range paramOwners(specs) {
		if owner < 0 {
			roles = append(roles, ArgRole{})
			continue
		}
		s := &specs[owner]
		if s.Width == FromArg {
			roles = append(roles, ArgRole{Spec: s, Star: "width"})
		}
		if s.Precision == FromArg {
			roles = append(roles, ArgRole{Spec: s, Star: "precision"})
		}
		roles = append(roles, ArgRole{Spec: s})
	}
	return roles
}

// resolveField replaces '*' sentinels by the values bound for them.
func (a *arg) resolveField(s *FormatSpec, sl *slot) {
	a.width, a.precision = s.Width, s.Precision
	a.left, a.padZero = s.LeftJustify, s.PadZero
	if a.width == FromArg {
		a.width = 0
		if sl != nil && sl.hasWidth {
			a.width = sl.width
		}
	}
	if a.width < 0 {
		a.left = true
		a.width = -a.width
	}
	if a.precision == FromArg {
		a.precision = -1
		if sl != nil && sl.hasPrecision {
			a.precision = sl.precision
		}
	}
	if a.precision < 0 {
		a.precision = -1
	}
}

func starValue(s *FormatSpec, v interface{}, pos int, what redact.SafeString) (int, error) {
	bits, _, ok := integerBits(v)
	if !ok {
		return 0, errors.WithHintf(
			errors.Newf("argument %d: %s %s cannot be a %T", pos, s, what, v),
			"a '*' %s takes an integer argument", what)
	}
	w := int(castSigned(bits, 32))
	if w > maxField {
		w = maxField
	} else if w < -maxField {
		w = -maxField
	}
	return w, nil
}

// convert fills a with v, converted the way the conversion of s reads its
// argument.
func (p *Printer) convert(a *arg, s *FormatSpec, v interface{}, pos int) error {
	switch s.Conversion {
	case ConvInt:
		bits, _, ok := integerBits(v)
		if !ok {
			return mismatch(s, pos, v, "an integer")
		}
		a.kind, a.i = kindInt, castSigned(bits, s.Type.bits())

	case ConvOctal, ConvUint, ConvHex:
		bits, _, ok := integerBits(v)
		if !ok {
			return mismatch(s, pos, v, "an integer")
		}
		a.kind, a.u = kindUint, castUnsigned(bits, s.Type.bits())

	case ConvFloat, ConvFloatExp, ConvFloatGeneral, ConvFloatHex:
		switch rv := reflect.ValueOf(v); {
		case !rv.IsValid():
			return mismatch(s, pos, v, "a floating-point number")
		case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
			a.kind, a.f = kindFloat, rv.Float()
		default:
			bits, signed, ok := integerBits(v)
			if !ok {
				return mismatch(s, pos, v, "a floating-point number")
			}
			a.kind = kindFloat
			if signed {
				a.f = float64(int64(bits))
			} else {
				a.f = float64(bits)
			}
		}

	case ConvChar:
		bits, _, ok := integerBits(v)
		if !ok {
			return mismatch(s, pos, v, "a character code point")
		}
		a.kind, a.i = kindChar, int64(int32(bits))

	case ConvString:
		return p.convertText(a, s, v, pos)

	case ConvPointer:
		return convertPointer(a, s, v, pos)

	case ConvGetNum:
		if a.count = countSetter(v); a.count == nil {
			return mismatch(s, pos, v, "a pointer to an integer")
		}
		a.kind = kindCount

	default:
		return errors.AssertionFailedf("unexpected conversion %s", s.Conversion)
	}
	return nil
}

func (p *Printer) convertText(a *arg, s *FormatSpec, v interface{}, pos int) error {
	a.kind = kindText
	switch t := v.(type) {
	case nil:
		a.kind = kindNullText
	case string:
		a.text = textenc.NewStringReader(t)
	case *string:
		if t == nil {
			a.kind = kindNullText
		} else {
			a.text = textenc.NewStringReader(*t)
		}
	case []byte:
		if t == nil {
			a.kind = kindNullText
		} else {
			a.text = p.narrowReader(t)
		}
	case []uint16:
		if t == nil {
			a.kind = kindNullText
		} else {
			a.text = textenc.NewUTF16Reader(t)
		}
	case []uint32:
		if t == nil {
			a.kind = kindNullText
		} else {
			a.text = textenc.NewUTF32Reader(t)
		}
	case []rune:
		if t == nil {
			a.kind = kindNullText
		} else {
			a.text = textenc.NewWideReader(t)
		}
	case error:
		a.text = textenc.NewStringReader(t.Error())
	case fmt.Stringer:
		a.text = textenc.NewStringReader(t.String())
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return mismatch(s, pos, v, "a string")
		}
		a.text = textenc.NewStringReader(rv.String())
	}
	return nil
}

func convertPointer(a *arg, s *FormatSpec, v interface{}, pos int) error {
	var addr uintptr
	switch t := v.(type) {
	case nil:
	case unsafe.Pointer:
		addr = uintptr(t)
	case uintptr:
		addr = t
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
			addr = rv.Pointer()
		default:
			return mismatch(s, pos, v, "a pointer")
		}
	}
	if addr == 0 {
		a.kind = kindNullPointer
	} else {
		a.kind, a.u = kindPointer, uint64(addr)
	}
	return nil
}

// countSetter returns a function storing into the integer v points to, or
// nil if v is not a pointer to an integer.
func countSetter(v interface{}) func(int) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil
	}
	elem := rv.Elem()
	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(n int) { elem.SetInt(int64(n)) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(n int) { elem.SetUint(uint64(n)) }
	}
	return nil
}

// integerBits returns the two's complement bits of an integer value, and
// whether it came from a signed type.
func integerBits(v interface{}) (bits uint64, signed bool, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), false, true
	}
	return 0, false, false
}

// castSigned truncates x to n bits and sign-extends the result, like a C
// conversion to a signed type of that width.
func castSigned(x uint64, n uint) int64 {
	shift := 64 - n
	return int64(x<<shift) >> shift
}

// castUnsigned truncates x to n bits.
func castUnsigned(x uint64, n uint) uint64 {
	if n >= 64 {
		return x
	}
	return x & (1<<n - 1)
}

func mismatch(s *FormatSpec, pos int, v interface{}, want redact.SafeString) error {
	return errors.WithHintf(
		errors.Newf("argument %d: %s cannot format a %T", pos, s, v),
		"%s expects %s", s, want)
}

func missingArg(pos, have int) error {
	return errors.WithHintf(
		errors.Newf("missing argument %d", pos),
		"the format consumes more arguments than the %d supplied", have)
}

