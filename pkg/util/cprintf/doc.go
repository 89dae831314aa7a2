// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

/*
Package cprintf implements C printf formatting, with the snprintf return
contract, independently of Go's fmt verbs.

The accepted grammar is

	%[N$][flags][width][.precision][length]conversion

with flags among "-+ #0'", a width and precision given as digits or '*',
length modifiers hh, h, l, ll, L, q, j, t, z and I64, and the conversions
d i o u x X f F e E g G a A c C s S p n m and %%.

A specifier that does not follow the grammar is not an error: its text is
copied to the output like any other literal text. Arguments are type
checked instead of being reinterpreted: integers are converted to the width
the length modifier selects, the way a C cast would, and an argument that
cannot be converted makes the call fail before anything is written.

Formatting runs in three steps. The format is parsed into FormatSpecs, the
arguments are bound to them in ascending parameter order (which is the
order a C va_list would be walked in), and the format is read a second time
to copy its literal text and render each conversion. Formats and outputs
can be UTF-8, a single-byte code page, UTF-16 or runes; see package
textenc.
*/
package cprintf
