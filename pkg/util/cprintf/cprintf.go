// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"io"

	"github.com/cockroachdb/cprintf/pkg/util/textenc"
	"github.com/cockroachdb/errors"
)

// initialAllocSize is the first buffer size Vasprintf tries.
const initialAllocSize = 32

// FormatTo formats the text read from r into w. The format is read twice,
// once to parse it and once to render it. The output always ends with a
// NUL, which w accounts for in its total.
//
// Nothing is written if an argument does not suit its specifier.
func (p *Printer) FormatTo(w textenc.Writer, r textenc.Reader, args []interface{}) error {
	specs := parseSpecs(r)
	bound, err := p.bind(specs, args)
	if err != nil {
		return err
	}
	rd := renderer{r: r, w: w}
	return rd.render(specs, bound)
}

// Vsnprintf formats into buf, storing at most len(buf)-1 bytes followed by
// a NUL when buf is not empty. It returns the length the complete output
// has, excluding the NUL, whether or not it fit: a result >= len(buf)
// means the output was truncated.
func (p *Printer) Vsnprintf(buf []byte, format string, args []interface{}) (int, error) {
	w := p.narrowWriter(buf)
	if err := p.FormatTo(w, textenc.NewStringReader(format), args); err != nil {
		return 0, err
	}
	return w.Total() - 1, nil
}

// Snprintf is Vsnprintf with variadic arguments.
func (p *Printer) Snprintf(buf []byte, format string, args ...interface{}) (int, error) {
	return p.Vsnprintf(buf, format, args)
}

// Vasprintf allocates a buffer that holds the complete output and its NUL
// exactly, and returns the buffer along with its size (len(buf)).
func (p *Printer) Vasprintf(format string, args []interface{}) ([]byte, int, error) {
	size := initialAllocSize
	// The first attempt measures the output; the second one must fit.
	for attempt := 0; attempt < 2; attempt++ {
		buf := make([]byte, size)
		n, err := p.Vsnprintf(buf, format, args)
		if err != nil {
			return nil, 0, err
		}
		if n < size {
			return buf[:n+1], n + 1, nil
		}
		size = n + 1
	}
	return nil, 0, errors.AssertionFailedf(
		"output of %q did not fit in the %d bytes it measured", format, size)
}

// Asprintf is Vasprintf with variadic arguments.
func (p *Printer) Asprintf(format string, args ...interface{}) ([]byte, int, error) {
	return p.Vasprintf(format, args)
}

// Sprintf returns the formatted output as a string, without the NUL.
func (p *Printer) Sprintf(format string, args ...interface{}) (string, error) {
	buf, n, err := p.Vasprintf(format, args)
	if err != nil {
		return "", err
	}
	return string(buf[:n-1]), nil
}

// Fprintf writes the formatted output, without the NUL, to w. It returns
// the number of bytes written.
func (p *Printer) Fprintf(w io.Writer, format string, args ...interface{}) (int, error) {
	buf, n, err := p.Vasprintf(format, args)
	if err != nil {
		return 0, err
	}
	return w.Write(buf[:n-1])
}

// SnprintfUTF16 is Snprintf over UTF-16 code units. The result counts
// code units.
func (p *Printer) SnprintfUTF16(buf []uint16, format []uint16, args ...interface{}) (int, error) {
	w := textenc.NewUTF16Writer(buf)
	if err := p.FormatTo(w, textenc.NewUTF16Reader(format), args); err != nil {
		return 0, err
	}
	return w.Total() - 1, nil
}

// SnprintfWide is Snprintf over wide characters.
func (p *Printer) SnprintfWide(buf []rune, format []rune, args ...interface{}) (int, error) {
	w := textenc.NewWideWriter(buf)
	if err := p.FormatTo(w, textenc.NewWideReader(format), args); err != nil {
		return 0, err
	}
	return w.Total() - 1, nil
}

// FormatTo formats with the default Printer, or with a Printer configured
// by opts if any are given.
func FormatTo(w textenc.Writer, r textenc.Reader, args []interface{}, opts ...Option) error {
	p := defaultPrinter
	if len(opts) > 0 {
		p = New(opts...)
	}
	return p.FormatTo(w, r, args)
}

// Vsnprintf formats with the default Printer.
func Vsnprintf(buf []byte, format string, args []interface{}) (int, error) {
	return defaultPrinter.Vsnprintf(buf, format, args)
}

// Snprintf formats with the default Printer.
func Snprintf(buf []byte, format string, args ...interface{}) (int, error) {
	return defaultPrinter.Vsnprintf(buf, format, args)
}

// Vasprintf formats with the default Printer.
func Vasprintf(format string, args []interface{}) ([]byte, int, error) {
	return defaultPrinter.Vasprintf(format, args)
}

// Asprintf formats with the default Printer.
func Asprintf(format string, args ...interface{}) ([]byte, int, error) {
	return defaultPrinter.Vasprintf(format, args)
}

// Sprintf formats with the default Printer.
func Sprintf(format string, args ...interface{}) (string, error) {
	return defaultPrinter.Sprintf(format, args...)
}

// Fprintf formats with the default Printer.
func Fprintf(w io.Writer, format string, args ...interface{}) (int, error) {
	return defaultPrinter.Fprintf(w, format, args...)
}

// SnprintfUTF16 formats with the default Printer.
func SnprintfUTF16(buf []uint16, format []uint16, args ...interface{}) (int, error) {
	return defaultPrinter.SnprintfUTF16(buf, format, args...)
}

// SnprintfWide formats with the default Printer.
func SnprintfWide(buf []rune, format []rune, args ...interface{}) (int, error) {
	return defaultPrinter.SnprintfWide(buf, format, args...)
}
