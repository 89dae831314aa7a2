// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the process exit codes of the cprintf command.
package exit

import (
	"fmt"
	"os"
)

// Code is a process exit code.
type Code struct {
	code int
}

// WithCode terminates the current process with the given exit code.
func WithCode(code Code) {
	os.Exit(code.code)
}

// Int returns the numeric value of the code.
func (c Code) Int() int { return c.code }

// String implements fmt.Stringer.
func (c Code) String() string { return fmt.Sprintf("exit code %d", c.code) }

// SafeValue implements redact.SafeValue.
func (c Code) SafeValue() {}
