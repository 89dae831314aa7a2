// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package textenc

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16Reader decodes UTF-16 code units. A lone or reversed surrogate ends
// the input.
type UTF16Reader struct {
	src []uint16
	pos int
}

var _ Reader = (*UTF16Reader)(nil)

// NewUTF16Reader returns a Reader over src.
func NewUTF16Reader(src []uint16) *UTF16Reader {
	return &UTF16Reader{src: src}
}

// Next implements the Reader interface.
func (r *UTF16Reader) Next() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	u := rune(r.src[r.pos])
	if !utf16.IsSurrogate(u) {
		r.pos++
		return u, true
	}
	if r.pos+1 >= len(r.src) {
		return 0, false
	}
	c := utf16.DecodeRune(u, rune(r.src[r.pos+1]))
	if c == unicode.ReplacementChar {
		return 0, false
	}
	r.pos += 2
	return c, true
}

// Reset implements the Reader interface.
func (r *UTF16Reader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *UTF16Reader) Position() int { return r.pos }

// UTF32Reader decodes UTF-32 code units. Surrogates and values beyond
// U+10FFFF end the input.
type UTF32Reader struct {
	src []uint32
	pos int
}

var _ Reader = (*UTF32Reader)(nil)

// NewUTF32Reader returns a Reader over src.
func NewUTF32Reader(src []uint32) *UTF32Reader {
	return &UTF32Reader{src: src}
}

// Next implements the Reader interface.
func (r *UTF32Reader) Next() (rune, bool) {
	if r.pos >= len(r.src) || r.src[r.pos] > unicode.MaxRune {
		return 0, false
	}
	c := rune(r.src[r.pos])
	if !utf8.ValidRune(c) {
		return 0, false
	}
	r.pos++
	return c, true
}

// Reset implements the Reader interface.
func (r *UTF32Reader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *UTF32Reader) Position() int { return r.pos }

// WideReader reads runes, Go's wide character type.
type WideReader struct {
	src []rune
	pos int
}

var _ Reader = (*WideReader)(nil)

// NewWideReader returns a Reader over src.
func NewWideReader(src []rune) *WideReader {
	return &WideReader{src: src}
}

// Next implements the Reader interface.
func (r *WideReader) Next() (rune, bool) {
	if r.pos >= len(r.src) || !utf8.ValidRune(r.src[r.pos]) {
		return 0, false
	}
	c := r.src[r.pos]
	r.pos++
	return c, true
}

// Reset implements the Reader interface.
func (r *WideReader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *WideReader) Position() int { return r.pos }

// UTF16Writer encodes code points as UTF-16, using surrogate pairs outside
// the basic multilingual plane.
type UTF16Writer struct {
	sink[uint16]
}

var _ Writer = (*UTF16Writer)(nil)

// NewUTF16Writer returns a Writer storing into dst.
func NewUTF16Writer(dst []uint16) *UTF16Writer {
	return &UTF16Writer{sink: sink[uint16]{dst: dst}}
}

// Put implements the Writer interface.
func (w *UTF16Writer) Put(r rune) {
	if r == 0 {
		w.terminate()
		return
	}
	var scratch [2]uint16
	w.add(utf16.AppendRune(scratch[:0], r))
}

// UTF32Writer stores one unit per code point.
type UTF32Writer struct {
	sink[uint32]
}

var _ Writer = (*UTF32Writer)(nil)

// NewUTF32Writer returns a Writer storing into dst.
func NewUTF32Writer(dst []uint32) *UTF32Writer {
	return &UTF32Writer{sink: sink[uint32]{dst: dst}}
}

// Put implements the Writer interface.
func (w *UTF32Writer) Put(r rune) {
	if r == 0 {
		w.terminate()
		return
	}
	if !utf8.ValidRune(r) {
		r = unicode.ReplacementChar
	}
	w.add([]uint32{uint32(r)})
}

// WideWriter stores runes.
type WideWriter struct {
	sink[rune]
}

var _ Writer = (*WideWriter)(nil)

// NewWideWriter returns a Writer storing into dst.
func NewWideWriter(dst []rune) *WideWriter {
	return &WideWriter{sink: sink[rune]{dst: dst}}
}

// Put implements the Writer interface.
func (w *WideWriter) Put(r rune) {
	if r == 0 {
		w.terminate()
		return
	}
	if !utf8.ValidRune(r) {
		r = unicode.ReplacementChar
	}
	w.add([]rune{r})
}
