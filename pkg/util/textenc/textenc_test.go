// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package textenc

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func drain(r Reader) (out []rune, positions []int) {
	for {
		c, ok := r.Next()
		if !ok {
			return out, positions
		}
		out = append(out, c)
		positions = append(positions, r.Position())
	}
}

func TestReaders(t *testing.T) {
	text := "a€𝄞"
	want := []rune(text)

	testCases := []struct {
		name      string
		r         Reader
		positions []int
	}{
		{"utf8", NewUTF8Reader([]byte(text)), []int{1, 4, 8}},
		{"string", NewStringReader(text), []int{1, 4, 8}},
		{"utf16", NewUTF16Reader(utf16.Encode(want)), []int{1, 2, 4}},
		{"utf32", NewUTF32Reader([]uint32{'a', '€', '𝄞'}), []int{1, 2, 3}},
		{"wide", NewWideReader(want), []int{1, 2, 3}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, positions := drain(tc.r)
			require.Equal(t, want, got)
			require.Equal(t, tc.positions, positions)

			// A second pass after Reset sees the same sequence.
			tc.r.Reset()
			require.Equal(t, 0, tc.r.Position())
			again, _ := drain(tc.r)
			require.Equal(t, want, again)
		})
	}
}

func TestReaderMalformedTail(t *testing.T) {
	testCases := []struct {
		name string
		r    Reader
		want []rune
	}{
		{"utf8 truncated", NewUTF8Reader([]byte("ab\xe2\x82")), []rune("ab")},
		{"utf8 invalid", NewUTF8Reader([]byte("a\xffb")), []rune("a")},
		{"string invalid", NewStringReader("x\xc0y"), []rune("x")},
		{"utf16 lone high surrogate", NewUTF16Reader([]uint16{'a', 0xd834}), []rune("a")},
		{"utf16 lone low surrogate", NewUTF16Reader([]uint16{'a', 0xdd1e, 'b'}), []rune("a")},
		{"utf32 surrogate", NewUTF32Reader([]uint32{'a', 0xd800}), []rune("a")},
		{"utf32 out of range", NewUTF32Reader([]uint32{'a', 0x110000}), []rune("a")},
		{"wide negative", NewWideReader([]rune{'a', -1}), []rune("a")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := drain(tc.r)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCharmapReader(t *testing.T) {
	r := NewCharmapReader(charmap.ISO8859_1, []byte{'c', 'a', 'f', 0xe9})
	got, positions := drain(r)
	require.Equal(t, []rune("café"), got)
	require.Equal(t, []int{1, 2, 3, 4}, positions)
}

func putAll(w Writer, s string) {
	for _, c := range s {
		w.Put(c)
	}
	w.Put(0)
}

func TestUTF8Writer(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		buf := make([]byte, 16)
		w := NewUTF8Writer(buf)
		putAll(w, "héllo")
		require.Equal(t, 7, w.Total())
		require.Equal(t, 7, w.Written())
		require.Equal(t, "héllo\x00", string(buf[:w.Written()]))
	})
	t.Run("truncated", func(t *testing.T) {
		buf := make([]byte, 3)
		w := NewUTF8Writer(buf)
		putAll(w, "hello")
		require.Equal(t, 6, w.Total())
		require.Equal(t, "he\x00", string(buf))
	})
	t.Run("no split", func(t *testing.T) {
		// "a€" needs 4 bytes of text; the euro sign must not be cut in half,
		// and the trailing ASCII letter must not sneak in after it.
		buf := make([]byte, 4)
		w := NewUTF8Writer(buf)
		putAll(w, "a€b")
		require.Equal(t, 6, w.Total())
		require.Equal(t, []byte{'a', 0}, buf[:w.Written()])
	})
	t.Run("nil", func(t *testing.T) {
		w := NewUTF8Writer(nil)
		putAll(w, "measure me")
		require.Equal(t, 11, w.Total())
		require.Equal(t, 0, w.Written())
	})
}

func TestCharmapWriter(t *testing.T) {
	buf := make([]byte, 8)
	w := NewCharmapWriter(charmap.Windows1252, buf)
	putAll(w, "€5→")
	require.Equal(t, 4, w.Total())
	require.Equal(t, []byte{0x80, '5', 0x1a, 0}, buf[:w.Written()])
}

func TestUTF16Writer(t *testing.T) {
	buf := make([]uint16, 8)
	w := NewUTF16Writer(buf)
	putAll(w, "a𝄞")
	require.Equal(t, 4, w.Total())
	require.Equal(t, []uint16{'a', 0xd834, 0xdd1e, 0}, buf[:w.Written()])

	// The surrogate pair does not fit in the two slots left for text.
	small := make([]uint16, 3)
	w = NewUTF16Writer(small)
	putAll(w, "a𝄞")
	require.Equal(t, 4, w.Total())
	require.Equal(t, []uint16{'a', 0}, small[:w.Written()])
}

func TestUTF32AndWideWriters(t *testing.T) {
	buf32 := make([]uint32, 4)
	w32 := NewUTF32Writer(buf32)
	putAll(w32, "x𝄞")
	require.Equal(t, []uint32{'x', 0x1d11e, 0}, buf32[:w32.Written()])

	wide := make([]rune, 2)
	ww := NewWideWriter(wide)
	ww.Put(0xd800)
	ww.Put('z')
	ww.Put(0)
	require.Equal(t, 3, ww.Total())
	require.Equal(t, []rune{0xfffd, 0}, wide[:ww.Written()])
}
