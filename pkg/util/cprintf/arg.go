// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import "github.com/cockroachdb/cprintf/pkg/util/textenc"

// argKind tags the value held by an arg.
type argKind int8

const (
	kindNone argKind = iota
	kindInt
	kindUint
	kindFloat
	kindChar
	kindText
	kindNullText
	kindPointer
	kindNullPointer
	kindCount
	kindErrno
)

// arg is a bound argument, converted for the specifier that renders it.
// Only the fields matching kind are meaningful.
type arg struct {
	kind argKind

	i    int64   // kindInt, kindChar
	u    uint64  // kindUint, kindPointer
	f    float64 // kindFloat
	text textenc.Reader
	// count receives the number of units written so far (%n).
	count func(int)
	errno error

	// Resolved field parameters. A negative '*' width has already been
	// turned into left justification.
	width     int
	precision int
	left      bool
	padZero   bool
}
