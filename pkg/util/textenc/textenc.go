// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package textenc provides cursors that decode code points out of, and
// encode code points into, buffers of code units. Buffers may hold 8-bit
// (UTF-8 or a single-byte code page), 16-bit (UTF-16), 32-bit (UTF-32) or
// wide (rune) units.
//
// Readers are rewindable so that a format string can be scanned twice.
// Writers never overflow their destination but keep counting the units
// they would have produced, which is what snprintf-style callers report.
package textenc

// A Reader produces the decoded code points of an encoded buffer one at a
// time.
type Reader interface {
	// Next decodes the code point at the cursor and advances past the units
	// it occupies. It returns false once no complete, well-formed code point
	// remains; a malformed or truncated sequence ends the input.
	Next() (rune, bool)
	// Reset rewinds the cursor to the start of the buffer.
	Reset()
	// Position returns the cursor offset in code units.
	Position() int
}

// A Writer accepts code points and re-encodes them into a bounded
// destination.
type Writer interface {
	// Put encodes r. Units that do not fit are dropped, but they are still
	// accounted for in Total.
	Put(r rune)
	// Total returns the number of units every Put so far would have
	// produced given unlimited capacity.
	Total() int
}

// codeUnit enumerates the unit types the package handles.
type codeUnit interface {
	~uint8 | ~uint16 | ~uint32 | ~int32
}

// sink is the bookkeeping shared by all writers. It stores at most
// len(dst)-1 units of text so that the terminating NUL always has a slot,
// and it never splits the units of a single code point.
type sink[T codeUnit] struct {
	dst   []T
	n     int
	total int
	// full is set once a code point did not fit. Later, shorter code points
	// are dropped too so that the output stays a prefix of the full text.
	full bool
}

func (s *sink[T]) add(units []T) {
	s.total += len(units)
	if s.full {
		return
	}
	if s.n+len(units) > len(s.dst)-1 {
		s.full = true
		return
	}
	s.n += copy(s.dst[s.n:], units)
}

// terminate stores a NUL unit if there is room for it. It is accounted for
// in the total like any other unit.
func (s *sink[T]) terminate() {
	s.total++
	if s.n < len(s.dst) {
		s.dst[s.n] = 0
		s.n++
	}
}

// Written returns the number of units actually stored in the destination,
// including a stored NUL. It is for callers that drive a Writer directly
// and need the stored prefix; the formatter itself only reads Total.
func (s *sink[T]) Written() int { return s.n }

// Total implements the Writer interface.
func (s *sink[T]) Total() int { return s.total }
