// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package humanizeutil

import "time"

// Duration prints a duration rounded to the precision a reader cares
// about at its scale: microseconds below 1ms, milliseconds below 1s, tenths
// of a second below 1m and whole seconds beyond.
func Duration(val time.Duration) string {
	switch val = val.Round(time.Microsecond); {
	case val == 0:
		return "0µs"
	case val < time.Millisecond:
		return val.String()
	case val < time.Second:
		return val.Round(time.Millisecond).String()
	case val < time.Minute:
		return val.Round(100 * time.Millisecond).String()
	default:
		return val.Round(time.Second).String()
	}
}
