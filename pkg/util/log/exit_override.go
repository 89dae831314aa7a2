// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "github.com/cockroachdb/cprintf/pkg/cli/exit"

// SetExitFunc makes Fatalf call f with exit.FatalError instead of ending
// the process. With hideStack, the goroutine dump that normally follows a
// fatal entry is left out. A nil f restores the default.
func SetExitFunc(hideStack bool, f func(exit.Code)) {
	logging.mu.Lock()
	defer logging.mu.Unlock()

	logging.mu.exitOverride.f = f
	logging.mu.exitOverride.hideStack = hideStack
}

// ResetExitFunc undoes any prior call to SetExitFunc.
func ResetExitFunc() {
	SetExitFunc(false /* hideStack */, nil)
}
