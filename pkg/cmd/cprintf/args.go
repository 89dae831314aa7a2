// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/cprintf/pkg/util/cprintf"
	"github.com/cockroachdb/cprintf/pkg/util/log"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// counter receives the count a %n specifier stores.
type counter struct {
	spec  cprintf.FormatSpec
	value *int64
}

// convertArgs turns the command-line strings into the values the specifiers
// read. %n takes no string: it is given a fresh counter instead.
func convertArgs(
	ctx context.Context, specs []cprintf.FormatSpec, strArgs []string,
) ([]interface{}, []counter, error) {
	// Only %n values come from elsewhere than the command line.
	avail := len(strArgs)
	for i := range specs {
		if specs[i].Conversion == cprintf.ConvGetNum {
			avail++
		}
	}
	if n := cprintf.ParamCount(specs); n > avail {
		return nil, nil, errors.WithHintf(
			errors.Newf("missing argument %d", len(strArgs)+1),
			"the format reads at least %d arguments", n)
	}
	roles := cprintf.Layout(specs)
	args := make([]interface{}, 0, len(roles))
	var counts []counter
	next := 0
	for _, r := range roles {
		if r.Spec != nil && r.Star == "" && r.Spec.Conversion == cprintf.ConvGetNum {
			c := counter{spec: *r.Spec, value: new(int64)}
			counts = append(counts, c)
			args = append(args, c.value)
			continue
		}
		if next >= len(strArgs) {
			return nil, nil, errors.WithHintf(
				errors.Newf("missing argument %d", next+1),
				"the format reads %d arguments from the command line", countStringArgs(roles))
		}
		s := strArgs[next]
		next++
		v, err := convertArg(r, s)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "argument %d", next)
		}
		args = append(args, v)
	}
	if extra := len(strArgs) - next; extra > 0 {
		log.Warningf(ctx, "ignoring %d unused arguments", extra)
	}
	return args, counts, nil
}

func countStringArgs(roles []cprintf.ArgRole) int {
	n := 0
	for _, r := range roles {
		if r.Spec == nil || r.Star != "" || r.Spec.Conversion != cprintf.ConvGetNum {
			n++
		}
	}
	return n
}

func convertArg(r cprintf.ArgRole, s string) (interface{}, error) {
	if r.Spec == nil {
		// Skipped by the formatter.
		return s, nil
	}
	if r.Star != "" {
		v, err := parseInt(s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s", r.Spec, r.Star)
		}
		return v, nil
	}
	switch r.Spec.Conversion {
	case cprintf.ConvInt:
		v, err := parseInt(s)
		return v, errors.Wrapf(err, "%s", r.Spec)
	case cprintf.ConvOctal, cprintf.ConvUint, cprintf.ConvHex:
		if strings.HasPrefix(s, "-") {
			// Negative values wrap around, as in C.
			v, err := parseInt(s)
			return v, errors.Wrapf(err, "%s", r.Spec)
		}
		if c, ok := quotedChar(s); ok {
			return uint64(c), nil
		}
		v, err := strconv.ParseUint(s, 0, 64)
		return v, errors.Wrapf(err, "%s", r.Spec)
	case cprintf.ConvFloat, cprintf.ConvFloatExp, cprintf.ConvFloatGeneral, cprintf.ConvFloatHex:
		v, err := strconv.ParseFloat(s, 64)
		return v, errors.Wrapf(err, "%s", r.Spec)
	case cprintf.ConvChar:
		c, _ := utf8.DecodeRuneInString(s)
		if s == "" {
			c = 0
		}
		return c, nil
	case cprintf.ConvPointer:
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
		return uintptr(v), errors.Wrapf(err, "%s", r.Spec)
	default:
		return s, nil
	}
}

// parseInt reads a signed integer with an optional base prefix, or the code
// point of a character following a quote, as printf(1) does.
func parseInt(s string) (int64, error) {
	if r, ok := quotedChar(s); ok {
		return int64(r), nil
	}
	return strconv.ParseInt(s, 0, 64)
}

func quotedChar(s string) (rune, bool) {
	if len(s) < 2 || (s[0] != '\'' && s[0] != '"') {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s[1:])
	return r, true
}

// lookupCharset resolves an IANA charset name to the code page output is
// encoded with. UTF-8 yields nil.
func lookupCharset(name string) (*charmap.Charmap, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "charset %q", name)
	}
	switch cm := enc.(type) {
	case nil:
		return nil, errors.Newf("charset %q is not supported", name)
	case *charmap.Charmap:
		return cm, nil
	default:
		if enc == unicode.UTF8 {
			return nil, nil
		}
		return nil, errors.WithHint(
			errors.Newf("charset %q is not a single-byte code page", name),
			"use utf-8 or a code page such as iso-8859-1 or windows-1252")
	}
}
