// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"github.com/cockroachdb/cprintf/pkg/util/textenc"
	"golang.org/x/text/encoding/charmap"
)

// Printer formats according to a fixed configuration. The zero value
// formats UTF-8 with no errno for %m, the same as New(). A Printer is
// immutable and safe for concurrent use.
type Printer struct {
	errno  error
	narrow *charmap.Charmap
}

// Option configures a Printer.
type Option func(*Printer)

// WithErrno sets the error %m describes. A nil error, or a zero
// syscall.Errno, renders as "Success".
func WithErrno(err error) Option {
	return func(p *Printer) { p.errno = err }
}

// WithNarrowCharset makes the byte-oriented front ends encode their output
// with a single-byte code page, and decodes []byte string arguments with
// it. The default is UTF-8.
func WithNarrowCharset(cm *charmap.Charmap) Option {
	return func(p *Printer) { p.narrow = cm }
}

// New returns a Printer with the given options applied.
func New(opts ...Option) *Printer {
	p := &Printer{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPrinter = New()

func (p *Printer) narrowReader(b []byte) textenc.Reader {
	if p.narrow != nil {
		return textenc.NewCharmapReader(p.narrow, b)
	}
	return textenc.NewUTF8Reader(b)
}

func (p *Printer) narrowWriter(buf []byte) textenc.Writer {
	if p.narrow != nil {
		return textenc.NewCharmapWriter(p.narrow, buf)
	}
	return textenc.NewUTF8Writer(buf)
}
