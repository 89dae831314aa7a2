// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"sort"

	"github.com/cockroachdb/cprintf/pkg/util/strutil"
	"github.com/cockroachdb/errors"
)

type logFormatter interface {
	formatterName() string
	// formatEntry renders one entry, newline included. Redaction markers
	// around unsafe values are kept only if redactable is set.
	formatEntry(entry logEntry, redactable bool) []byte
}

var formatters = func() map[string]logFormatter {
	m := make(map[string]logFormatter)
	r := func(f logFormatter) {
		m[f.formatterName()] = f
	}
	r(formatCrdbV1{})
	r(formatCrdbV1TTY{})
	r(formatJSON{})
	return m
}()

// FormatNames lists the names SetFormat accepts.
func FormatNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetFormat selects the line format by name.
func SetFormat(name string) error {
	f, ok := formatters[name]
	if !ok {
		return errors.WithHintf(errors.Newf("unknown log format %q", name),
			"supported formats: %v", FormatNames())
	}
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.formatter = f
	return nil
}

// formatCrdbV1 writes lines of the form
//
//	I261019 14:03:05.123456 main.go:42  [n1,job=7] 3  message
//
// with the severity letter, the UTC date and time, the caller, the context
// tags, the entry counter and the message.
type formatCrdbV1 struct{}

func (formatCrdbV1) formatterName() string { return "crdb-v1" }

func (formatCrdbV1) formatEntry(entry logEntry, redactable bool) []byte {
	return formatLogEntryInternal(entry, redactable, nil)
}

// formatCrdbV1TTY is crdb-v1 colored for the terminal on stderr, if any.
type formatCrdbV1TTY struct{}

func (formatCrdbV1TTY) formatterName() string { return "crdb-v1-tty" }

func (formatCrdbV1TTY) formatEntry(entry logEntry, redactable bool) []byte {
	cp := stderrColorProfile
	if noColor {
		cp = nil
	}
	return formatLogEntryInternal(entry, redactable, cp)
}

func formatLogEntryInternal(entry logEntry, redactable bool, cp *colorProfile) []byte {
	buf := make([]byte, 0, 128+len(entry.payload))
	if cp != nil {
		buf = append(buf, cp.severityPrefix(entry.sev)...)
	}
	buf = append(buf, entry.sev.char())
	if cp != nil {
		buf = append(buf, colorReset...)
		buf = append(buf, cp.timePrefix...)
	}

	ts := entry.ts.UTC()
	year, month, day := ts.Date()
	hour, minute, second := ts.Clock()
	buf = strutil.AppendInt(buf, year%100, 2)
	buf = strutil.AppendInt(buf, int(month), 2)
	buf = strutil.AppendInt(buf, day, 2)
	buf = append(buf, ' ')
	buf = strutil.AppendInt(buf, hour, 2)
	buf = append(buf, ':')
	buf = strutil.AppendInt(buf, minute, 2)
	buf = append(buf, ':')
	buf = strutil.AppendInt(buf, second, 2)
	buf = append(buf, '.')
	buf = strutil.AppendInt(buf, ts.Nanosecond()/1000, 6)
	if cp != nil {
		buf = append(buf, colorReset...)
	}

	buf = append(buf, ' ')
	buf = append(buf, entry.file...)
	buf = append(buf, ':')
	buf = strutil.AppendInt(buf, entry.line, 0)
	buf = append(buf, ' ', ' ')
	if entry.tags != nil {
		buf = append(buf, '[')
		buf = append(buf, formatTags(entry.tags)...)
		buf = append(buf, ']', ' ')
	}
	buf = strutil.AppendInt(buf, int(entry.counter), 0)
	buf = append(buf, ' ', ' ')
	buf = append(buf, renderPayload(entry, redactable)...)
	return append(buf, '\n')
}

func renderPayload(entry logEntry, redactable bool) string {
	if redactable {
		return string(entry.payload)
	}
	return entry.payload.StripMarkers()
}
