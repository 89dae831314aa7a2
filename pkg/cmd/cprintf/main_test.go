// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"syscall"
	"testing"
	"unsafe"

	"github.com/cockroachdb/cprintf/pkg/cli/exit"
	"github.com/cockroachdb/cprintf/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	pointer := fmt.Sprintf("0x%0*x", 2*int(unsafe.Sizeof(uintptr(0))), 0x1234)

	testCases := []struct {
		name    string
		env     string
		args    []string
		code    exit.Code
		stdout  string
		logHas  string
		logNone bool
	}{
		{
			name:    "mixed conversions",
			args:    []string{"%s=%05.1f|%x|%o", "pi", "3.14159", "255", "0x8"},
			stdout:  "pi=003.1|ff|10",
			logNone: true,
		},
		{
			name:   "negative arguments after the format",
			args:   []string{"%d|%u|%hhd", "-5", "-1", "300"},
			stdout: "-5|4294967295|44",
		},
		{
			name:   "quoted characters give their code point",
			args:   []string{"%d %x", "'A", `"a`},
			stdout: "65 61",
		},
		{
			name:   "characters",
			args:   []string{"%c%c%c", "é", "xyz", ""},
			stdout: "éx\x00",
		},
		{name: "pointer", args: []string{"%p", "0x1234"}, stdout: pointer},
		{name: "positional", args: []string{"%2$s %1$s", "a", "b"}, stdout: "b a"},
		{name: "star", args: []string{"%*d|%-*d|", "5", "42", "3", "7"}, stdout: "   42|7  |"},
		{name: "errno", args: []string{"--errno=2", "%m"}, stdout: syscall.Errno(2).Error()},
		{
			name:   "truncated",
			args:   []string{"--buffer-size=4", "%s", "abcdef"},
			stdout: "abc",
			logHas: "output truncated to 3 B of 6 B",
		},
		{
			name:   "measure",
			args:   []string{"--measure", "--buffer-size=1", "%s|%5d", "abcdef", "1"},
			stdout: "12\n",
		},
		{name: "code page", args: []string{"--charset=iso-8859-1", "%s%c", "é", "ü"}, stdout: "\xe9\xfc"},
		{name: "code page from env", env: "windows-1252", args: []string{"%s", "€"}, stdout: "\x80"},
		{name: "utf-8 by name", args: []string{"--charset=UTF-8", "%s", "€"}, stdout: "€"},
		{
			name:   "count with verbose",
			args:   []string{"--verbose", "abc%n%s", "de"},
			stdout: "abcde",
			logHas: "%n stored 3",
		},
		{
			name:   "extra arguments",
			args:   []string{"%d", "1", "2"},
			stdout: "1",
			logHas: "ignoring 1 unused arguments",
		},
		{
			name:   "not a number",
			args:   []string{"%s %d", "x", "abc"},
			code:   exit.ArgumentConversionError(),
			logHas: "argument 2: %d: strconv.ParseInt",
		},
		{
			name:   "missing argument",
			args:   []string{"%d %d", "1"},
			code:   exit.ArgumentConversionError(),
			logHas: "HINT: the format reads at least 2 arguments",
		},
		{
			name:   "missing star argument",
			args:   []string{"%*d", "5"},
			code:   exit.ArgumentConversionError(),
			logHas: "HINT: the format reads 2 arguments from the command line",
		},
		{
			name:   "large index",
			args:   []string{"%16777216$d", "1"},
			code:   exit.ArgumentConversionError(),
			logHas: "missing argument 2",
		},
		{
			name:   "bad star",
			args:   []string{"%*d", "wide", "1"},
			code:   exit.ArgumentConversionError(),
			logHas: "argument 1: %*d width",
		},
		{name: "no format", args: nil, code: exit.CommandLineFlagError(), logHas: "missing FORMAT"},
		{name: "unknown flag", args: []string{"--bogus", "x"}, code: exit.CommandLineFlagError()},
		{name: "bad size", args: []string{"--buffer-size=lots", "x"}, code: exit.CommandLineFlagError()},
		{
			name:   "unknown charset",
			args:   []string{"--charset=klingon", "x"},
			code:   exit.CommandLineFlagError(),
			logHas: `charset "klingon"`,
		},
		{
			name:   "multi-byte charset",
			args:   []string{"--charset=utf-16", "x"},
			code:   exit.CommandLineFlagError(),
			logHas: "HINT: use utf-8 or a code page",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(charsetEnv, tc.env)
			var stdout, stderr bytes.Buffer
			defer log.SetOutput(&stderr)()

			code := run(context.Background(), tc.args, &stdout)
			require.Equal(t, tc.code, code, "log:\n%s", stderr.String())
			require.Equal(t, tc.stdout, stdout.String())
			if tc.logHas != "" {
				require.Contains(t, stderr.String(), tc.logHas)
			}
			if tc.logNone {
				require.Empty(t, stderr.String())
			}
		})
	}
}

func TestExplain(t *testing.T) {
	var stdout, stderr bytes.Buffer
	defer log.SetOutput(&stderr)()

	code := run(context.Background(), []string{"--explain", "ab%-5d%%%2$lls %m"}, &stdout)
	require.Equal(t, exit.Success(), code)
	out := stdout.String()
	require.Regexp(t, `(?m)^\s*offset\s+\|\s+specifier\s+\|\s+argument\s+\|\s+conversion\s+\|\s+size\s*$`, out)
	require.Regexp(t, `(?m)^\s*2\s+\|\s+%-5d\s+\|\s+1\s+\|\s+int\s+\|\s+int\s*$`, out)
	require.Regexp(t, `(?m)^\s*6\s+\|\s+%%\s+\|\s+-\s+\|\s+none\s+\|\s+int\s*$`, out)
	require.Regexp(t, `(?m)^\s*8\s+\|\s+%2\$lls\s+\|\s+2\s+\|\s+string\s+\|\s+ll\s*$`, out)
	require.Regexp(t, `(?m)^\s*15\s+\|\s+%m\s+\|\s+-\s+\|\s+errno\s+\|\s+int\s*$`, out)
	require.Empty(t, stderr.String())
}

func TestVerboseSpecifiers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	defer log.SetOutput(&stderr)()
	require.False(t, log.V(1))

	code := run(context.Background(), []string{"--verbose", "[%-4s|%1$s]", "ab"}, &stdout)
	require.Equal(t, exit.Success(), code)
	require.Equal(t, "[ab  |ab]", stdout.String())
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "%-4s at offset 1 reads parameter 1")
	require.Contains(t, lines[1], "%1$s at offset 6 reads parameter 1")
	require.Contains(t, lines[2], "formatted 2 specifiers into 9 bytes")
	// The flag's verbosity does not outlive the command.
	require.False(t, log.V(1))
}
