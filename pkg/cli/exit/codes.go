// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exit

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition. The specific cause of the error can be found in
// the logging output.
func UnspecifiedError() Code { return Code{1} }

// UnspecifiedGoPanic (2) indicates the process has terminated due to
// an uncaught Go panic or some other error in the Go runtime.
func UnspecifiedGoPanic() Code { return Code{2} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// FatalError (7) indicates that a Fatal log message stopped the process.
func FatalError() Code { return Code{7} }

// Codes specific to the cprintf command are allocated down from 125.

// ArgumentConversionError (125) indicates that a command-line argument
// could not be converted to the type its specifier expects, or that the
// format consumed more arguments than were given.
func ArgumentConversionError() Code { return Code{125} }
