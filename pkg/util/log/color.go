// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// colorProfile defines escape sequences which provide color in
// terminals. Some terminals support 8 colors, some 256, others
// none at all.
type colorProfile struct {
	infoPrefix  []byte
	warnPrefix  []byte
	errorPrefix []byte
	timePrefix  []byte
}

var colorReset = []byte("\033[0m")

// For terms with 8-color support.
var colorProfile8 = &colorProfile{
	infoPrefix:  []byte("\033[0;36;49m"),
	warnPrefix:  []byte("\033[0;33;49m"),
	errorPrefix: []byte("\033[0;31;49m"),
	timePrefix:  []byte("\033[2;37;49m"),
}

// For terms with 256-color support.
var colorProfile256 = &colorProfile{
	infoPrefix:  []byte("\033[38;5;33m"),
	warnPrefix:  []byte("\033[38;5;214m"),
	errorPrefix: []byte("\033[38;5;160m"),
	timePrefix:  []byte("\033[38;5;246m"),
}

func (cp *colorProfile) severityPrefix(s Severity) []byte {
	switch {
	case s >= Severity_ERROR:
		return cp.errorPrefix
	case s == Severity_WARNING:
		return cp.warnPrefix
	default:
		return cp.infoPrefix
	}
}

// noColor is set by the --no-color flag.
var noColor bool

// stderrColorProfile is nil unless stderr is a terminal that shows color.
var stderrColorProfile = func() *colorProfile {
	fd := OrigStderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return colorProfileForTerm(os.Getenv("TERM"))
}()

func colorProfileForTerm(term string) *colorProfile {
	switch term {
	case "ansi", "tmux":
		return colorProfile8
	case "st":
		return colorProfile256
	}
	if strings.HasSuffix(term, "256color") {
		return colorProfile256
	}
	if strings.HasSuffix(term, "color") || strings.HasPrefix(term, "screen") {
		return colorProfile8
	}
	return nil
}
