// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/cprintf/pkg/cli/exit"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 10, 19, 14, 3, 5, 123456789, time.UTC)

// captureLog sends log lines to the returned buffer in the crdb-v1 format,
// with a fixed clock and a fresh counter, until the test ends.
func captureLog(t *testing.T, threshold Severity) *bytes.Buffer {
	var buf bytes.Buffer
	restoreOut := SetOutput(&buf)
	restoreThreshold := SetThreshold(threshold)
	logging.mu.Lock()
	prevNow, prevFormatter := logging.mu.now, logging.mu.formatter
	logging.mu.now = func() time.Time { return testTime }
	logging.mu.formatter = formatCrdbV1{}
	logging.mu.Unlock()
	logging.counter.Store(0)
	prevVerbosity := SetVerbosity(0)

	t.Cleanup(func() {
		restoreOut()
		restoreThreshold()
		SetVerbosity(prevVerbosity)
		SetRedactable(false)
		ResetExitFunc()
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.now, logging.mu.formatter = prevNow, prevFormatter
	})
	return &buf
}

func TestCrdbV1Format(t *testing.T) {
	buf := captureLog(t, Severity_INFO)
	ctx := logtags.AddTag(context.Background(), "n", 1)
	ctx = logtags.AddTag(ctx, "job", 7)
	ctx = logtags.AddTag(ctx, "dry", nil)

	Infof(ctx, "hello %s", "world")
	Errorf(context.Background(), "code %d", 3)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Regexp(t, `^I261019 14:03:05\.123456 log_test\.go:\d+  \[n1,job=7,dry\] 1  hello world$`, lines[0])
	require.Regexp(t, `^E261019 14:03:05\.123456 log_test\.go:\d+  2  code 3$`, lines[1])
}

func TestRedactable(t *testing.T) {
	buf := captureLog(t, Severity_INFO)
	Infof(context.Background(), "user %s", "bob")
	require.True(t, strings.HasSuffix(buf.String(), "  user bob\n"), buf.String())

	buf.Reset()
	SetRedactable(true)
	Infof(context.Background(), "user %s", "bob")
	require.True(t, strings.HasSuffix(buf.String(), "  user ‹bob›\n"), buf.String())
}

func TestThresholdAndVerbosity(t *testing.T) {
	buf := captureLog(t, Severity_WARNING)
	ctx := context.Background()

	Infof(ctx, "dropped")
	require.Empty(t, buf.String())
	require.False(t, LoggingToStderr(Severity_INFO))
	require.True(t, LoggingToStderr(Severity_ERROR))

	Warningf(ctx, "kept")
	require.True(t, strings.HasPrefix(buf.String(), "W"))

	buf.Reset()
	SetVerbosity(2)
	require.True(t, V(2))
	require.False(t, V(3))
	VEventf(ctx, 3, "too detailed")
	require.Empty(t, buf.String())
	VEventf(ctx, 2, "detail %d", 1)
	require.Contains(t, buf.String(), "detail 1")
	require.True(t, strings.HasPrefix(buf.String(), "I"))
}

func TestFatal(t *testing.T) {
	buf := captureLog(t, Severity_ERROR)
	var got exit.Code
	SetExitFunc(true /* hideStack */, func(c exit.Code) { got = c })
	Fatalf(context.Background(), "giving up")
	require.Equal(t, exit.FatalError(), got)
	require.True(t, strings.HasPrefix(buf.String(), "F"))
	require.True(t, strings.HasSuffix(buf.String(), "giving up\n"))

	buf.Reset()
	SetExitFunc(false /* hideStack */, func(c exit.Code) { got = c })
	Fatalf(context.Background(), "again")
	require.Contains(t, buf.String(), "goroutine")
}

func TestJSONFormat(t *testing.T) {
	buf := captureLog(t, Severity_INFO)
	require.NoError(t, SetFormat("json"))
	ctx := logtags.AddTag(context.Background(), "n", 2)
	Warningf(ctx, "%d%% done", 50)

	var entry jsonEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARNING", entry.Severity)
	require.Equal(t, "2026-10-19T14:03:05.123456789Z", entry.Timestamp)
	require.Equal(t, "log_test.go", entry.File)
	require.Equal(t, uint64(1), entry.Counter)
	require.Equal(t, map[string]string{"n": "2"}, entry.Tags)
	require.Equal(t, "50% done", entry.Message)
}

func TestSetFormat(t *testing.T) {
	captureLog(t, Severity_INFO)
	require.Equal(t, []string{"crdb-v1", "crdb-v1-tty", "json"}, FormatNames())
	err := SetFormat("xml")
	require.ErrorContains(t, err, `unknown log format "xml"`)
	require.Equal(t, []string{"supported formats: [crdb-v1 crdb-v1-tty json]"}, errors.GetAllHints(err))
}

func TestColor(t *testing.T) {
	prev := stderrColorProfile
	defer func() { stderrColorProfile = prev }()
	stderrColorProfile = colorProfile8

	entry := logEntry{sev: Severity_WARNING, ts: testTime, file: "x.go", line: 1, counter: 4}
	out := string(formatCrdbV1TTY{}.formatEntry(entry, false))
	require.Equal(t,
		"\033[0;33;49mW\033[0m\033[2;37;49m261019 14:03:05.123456\033[0m x.go:1  4  \n", out)

	noColor = true
	defer func() { noColor = false }()
	out = string(formatCrdbV1TTY{}.formatEntry(entry, false))
	require.Equal(t, "W261019 14:03:05.123456 x.go:1  4  \n", out)
}

func TestColorProfileForTerm(t *testing.T) {
	for term, want := range map[string]*colorProfile{
		"ansi":           colorProfile8,
		"tmux":           colorProfile8,
		"st":             colorProfile256,
		"xterm-256color": colorProfile256,
		"xterm-color":    colorProfile8,
		"screen":         colorProfile8,
		"dumb":           nil,
		"":               nil,
	} {
		require.Equal(t, want, colorProfileForTerm(term), term)
	}
}

func TestAddFlags(t *testing.T) {
	captureLog(t, Severity_INFO)
	defer func() { noColor = false }()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--v=3", "--log-format=json", "--log-threshold=error", "--redactable-logs", "--no-color",
	}))
	require.True(t, V(3))
	require.Equal(t, "json", fs.Lookup("log-format").Value.String())
	require.Equal(t, "ERROR", fs.Lookup("log-threshold").Value.String())
	require.Equal(t, "true", fs.Lookup("redactable-logs").Value.String())
	require.True(t, noColor)

	require.Error(t, fs.Parse([]string{"--log-threshold=loud"}))
	require.Error(t, fs.Parse([]string{"--v=-1"}))
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	require.Equal(t, "[n1] x=3", FormatWithContextTags(ctx, "x=%d", 3))
	require.Equal(t, "x=3", FormatWithContextTags(context.Background(), "x=%d", 3))
}

func TestSeverityByName(t *testing.T) {
	sev, ok := SeverityByName("warning")
	require.True(t, ok)
	require.Equal(t, Severity_WARNING, sev)
	_, ok = SeverityByName("unknown")
	require.False(t, ok)
	require.Equal(t, "Severity(9)", Severity(9).String())
}
