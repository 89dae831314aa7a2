// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package textenc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// UTF8Reader decodes UTF-8 bytes.
type UTF8Reader struct {
	src []byte
	pos int
}

var _ Reader = (*UTF8Reader)(nil)

// NewUTF8Reader returns a Reader over src.
func NewUTF8Reader(src []byte) *UTF8Reader {
	return &UTF8Reader{src: src}
}

// Next implements the Reader interface.
func (r *UTF8Reader) Next() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	if c := r.src[r.pos]; c < utf8.RuneSelf {
		r.pos++
		return rune(c), true
	}
	c, size := utf8.DecodeRune(r.src[r.pos:])
	if c == utf8.RuneError && size <= 1 {
		// Either an invalid or an incomplete sequence.
		return 0, false
	}
	r.pos += size
	return c, true
}

// Reset implements the Reader interface.
func (r *UTF8Reader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *UTF8Reader) Position() int { return r.pos }

// StringReader decodes a UTF-8 encoded Go string without copying it.
type StringReader struct {
	src string
	pos int
}

var _ Reader = (*StringReader)(nil)

// NewStringReader returns a Reader over s.
func NewStringReader(s string) *StringReader {
	return &StringReader{src: s}
}

// Next implements the Reader interface.
func (r *StringReader) Next() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	if c := r.src[r.pos]; c < utf8.RuneSelf {
		r.pos++
		return rune(c), true
	}
	c, size := utf8.DecodeRuneInString(r.src[r.pos:])
	if c == utf8.RuneError && size <= 1 {
		return 0, false
	}
	r.pos += size
	return c, true
}

// Reset implements the Reader interface.
func (r *StringReader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *StringReader) Position() int { return r.pos }

// CharmapReader decodes bytes in a single-byte code page such as
// ISO-8859-1 or Windows-1252. Every byte decodes to exactly one code point;
// bytes the code page leaves undefined decode to U+FFFD.
type CharmapReader struct {
	cm  *charmap.Charmap
	src []byte
	pos int
}

var _ Reader = (*CharmapReader)(nil)

// NewCharmapReader returns a Reader decoding src with cm.
func NewCharmapReader(cm *charmap.Charmap, src []byte) *CharmapReader {
	return &CharmapReader{cm: cm, src: src}
}

// Next implements the Reader interface.
func (r *CharmapReader) Next() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	c := r.cm.DecodeByte(r.src[r.pos])
	r.pos++
	return c, true
}

// Reset implements the Reader interface.
func (r *CharmapReader) Reset() { r.pos = 0 }

// Position implements the Reader interface.
func (r *CharmapReader) Position() int { return r.pos }

// UTF8Writer encodes code points as UTF-8. Invalid code points are written
// as U+FFFD.
type UTF8Writer struct {
	sink[byte]
}

var _ Writer = (*UTF8Writer)(nil)

// NewUTF8Writer returns a Writer storing into dst. dst may be nil.
func NewUTF8Writer(dst []byte) *UTF8Writer {
	return &UTF8Writer{sink: sink[byte]{dst: dst}}
}

// Put implements the Writer interface.
func (w *UTF8Writer) Put(r rune) {
	if r == 0 {
		w.terminate()
		return
	}
	var scratch [utf8.UTFMax]byte
	w.add(utf8.AppendRune(scratch[:0], r))
}

// CharmapWriter encodes code points into a single-byte code page. Code
// points the code page cannot represent are written as the ASCII
// substitute character.
type CharmapWriter struct {
	sink[byte]
	cm *charmap.Charmap
}

var _ Writer = (*CharmapWriter)(nil)

// NewCharmapWriter returns a Writer encoding with cm into dst.
func NewCharmapWriter(cm *charmap.Charmap, dst []byte) *CharmapWriter {
	return &CharmapWriter{sink: sink[byte]{dst: dst}, cm: cm}
}

// Put implements the Writer interface.
func (w *CharmapWriter) Put(r rune) {
	if r == 0 {
		w.terminate()
		return
	}
	b, ok := w.cm.EncodeRune(r)
	if !ok {
		b = encoding.ASCIISub
	}
	w.add([]byte{b})
}
