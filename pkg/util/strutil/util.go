// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package strutil holds allocation-free string building helpers.
package strutil

import "strconv"

// AppendInt appends the decimal form of x to b, left padded with zeros to
// width digits. The sign of a negative x counts toward the width.
func AppendInt(b []byte, x int, width int) []byte {
	u := uint64(x)
	if x < 0 {
		b = append(b, '-')
		width--
		u = -u
	}
	var scratch [20]byte
	digits := strconv.AppendUint(scratch[:0], u, 10)
	for n := len(digits); n < width; n++ {
		b = append(b, '0')
	}
	return append(b, digits...)
}
