// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"strconv"
	"syscall"

	"github.com/cockroachdb/errors"
)

// errnoText returns the text %m renders for err. The alternate form
// ("%#m") names the error number symbolically when err carries one.
func errnoText(err error, alternate bool) string {
	if err == nil {
		return "Success"
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return err.Error()
	}
	if errno == 0 {
		return "Success"
	}
	if alternate {
		if name := errnoName(errno); name != "" {
			return name
		}
		return strconv.Itoa(int(errno))
	}
	return errno.Error()
}
