// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"fmt"
	"strings"
)

// Severity orders log entries by importance.
type Severity int32

// The severities, from least to most severe.
const (
	Severity_UNKNOWN Severity = iota
	Severity_INFO
	Severity_WARNING
	Severity_ERROR
	Severity_FATAL
)

var severityNames = [...]string{"UNKNOWN", "INFO", "WARNING", "ERROR", "FATAL"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int32(s))
	}
	return severityNames[s]
}

// SafeValue implements redact.SafeValue.
func (s Severity) SafeValue() {}

// char is the one-letter prefix of the crdb-v1 format.
func (s Severity) char() byte {
	if s <= Severity_UNKNOWN || s > Severity_FATAL {
		return 'U'
	}
	return severityNames[s][0]
}

// SeverityByName looks up a severity by its name, ignoring case.
func SeverityByName(name string) (Severity, bool) {
	for i, n := range severityNames {
		if i > 0 && strings.EqualFold(n, name) {
			return Severity(i), true
		}
	}
	return Severity_UNKNOWN, false
}
