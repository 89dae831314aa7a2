// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log writes leveled, context-tagged log lines to stderr.
//
// Every logging call takes a context.Context. The logtags attached to it
// are printed in brackets ahead of the message, and the message arguments
// are rendered through redact, so that a line can be written with or
// without redaction markers around the unsafe values.
package log

import (
	"context"
	"io"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/cprintf/pkg/cli/exit"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/mattn/go-colorable"
)

// logEntry is one log line before formatting.
type logEntry struct {
	sev     Severity
	ts      time.Time
	file    string
	line    int
	counter uint64
	tags    *logtags.Buffer
	payload redact.RedactableString
}

type loggingT struct {
	verbosity atomic.Int32
	counter   atomic.Uint64

	mu struct {
		sync.Mutex
		out        io.Writer
		formatter  logFormatter
		threshold  Severity
		redactable bool
		now        func() time.Time

		exitOverride struct {
			f         func(exit.Code)
			hideStack bool
		}
	}
}

var logging = func() *loggingT {
	l := &loggingT{}
	// Escape sequences are translated for consoles that need it.
	l.mu.out = colorable.NewColorable(OrigStderr)
	l.mu.formatter = formatCrdbV1TTY{}
	l.mu.threshold = Severity_WARNING
	l.mu.now = time.Now
	return l
}()

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_INFO, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_WARNING, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_ERROR, format, args)
}

// Fatalf logs to the FATAL severity, then terminates the process with
// exit.FatalError, or calls the function given to SetExitFunc.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_FATAL, format, args)
}

// V returns true if the verbosity is at least level.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// VEventf logs to the INFO severity if V(level) holds. The entry is written
// regardless of the severity threshold.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if !V(level) {
		return
	}
	entry := makeEntry(ctx, Severity_INFO, 1, format, args)
	logging.outputLogEntry(entry, true /* force */)
}

// SetVerbosity sets the level V compares against and returns the
// previous one.
func SetVerbosity(level int32) int32 {
	return logging.verbosity.Swap(level)
}

// SetThreshold sets the least severity written out. Entries below it are
// dropped. It returns a function that restores the previous threshold.
func SetThreshold(sev Severity) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.threshold
	logging.mu.threshold = sev
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.threshold = prev
	}
}

// SetOutput redirects log lines to w. It returns a function that restores
// the previous output.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = prev
	}
}

// SetRedactable controls whether redaction markers are kept in the
// output.
func SetRedactable(redactable bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.redactable = redactable
}

func logDepth(ctx context.Context, depth int, sev Severity, format string, args []interface{}) {
	entry := makeEntry(ctx, sev, depth+1, format, args)
	logging.outputLogEntry(entry, false /* force */)
}

// makeEntry captures the caller depth frames above its own caller.
func makeEntry(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) logEntry {
	entry := logEntry{
		sev:     sev,
		file:    "???",
		tags:    logtags.FromContext(ctx),
		payload: redact.Sprintf(format, args...),
	}
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		entry.file, entry.line = filepath.Base(file), line
	}
	return entry
}

func (l *loggingT) outputLogEntry(entry logEntry, force bool) {
	l.mu.Lock()
	if !force && entry.sev < l.mu.threshold && entry.sev != Severity_FATAL {
		l.mu.Unlock()
		return
	}
	entry.ts = l.mu.now()
	entry.counter = l.counter.Add(1)
	buf := l.mu.formatter.formatEntry(entry, l.mu.redactable)
	if entry.sev == Severity_FATAL && !l.mu.exitOverride.hideStack {
		buf = append(buf, debug.Stack()...)
	}
	_, _ = l.mu.out.Write(buf)
	exitFn := l.mu.exitOverride.f
	l.mu.Unlock()

	if entry.sev != Severity_FATAL {
		return
	}
	if exitFn == nil {
		exitFn = exit.WithCode
	}
	exitFn(exit.FatalError())
}
