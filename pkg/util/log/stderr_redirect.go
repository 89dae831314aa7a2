// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "os"

// OrigStderr points to the process' stderr stream as it was at startup.
// Log output goes there until SetOutput changes it.
var OrigStderr = os.Stderr

// LoggingToStderr returns true if entries of the given severity reach the
// output.
func LoggingToStderr(s Severity) bool {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	return s >= logging.mu.threshold
}
