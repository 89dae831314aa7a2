// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package humanizeutil reads and prints byte sizes and durations the way
// a person would write them.
package humanizeutil

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// IBytes prints a signed byte count with binary (KiB, MiB) units.
func IBytes(value int64) string {
	if value < 0 {
		return "-" + humanize.IBytes(uint64(-value))
	}
	return humanize.IBytes(uint64(value))
}

// ParseBytes reads a signed byte count such as "64", "4 KiB" or "1.5MB".
func ParseBytes(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty byte size")
	}
	digits, negative := s, false
	if s[0] == '-' {
		digits, negative = s[1:], true
	}
	value, err := humanize.ParseBytes(digits)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid byte size %q", s)
	}
	if value > math.MaxInt64 {
		return 0, errors.Newf("byte size %q is too large", s)
	}
	if negative {
		return -int64(value), nil
	}
	return int64(value), nil
}

// BytesValue is a pflag.Value for sizes written in a form ParseBytes
// accepts. Negative sizes are rejected.
type BytesValue struct {
	val   *int64
	isSet bool
}

var _ pflag.Value = &BytesValue{}

// NewBytesValue returns a BytesValue that stores into val.
func NewBytesValue(val *int64) *BytesValue {
	return &BytesValue{val: val}
}

// Set implements pflag.Value.
func (b *BytesValue) Set(s string) error {
	v, err := ParseBytes(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.Newf("byte size %q is negative", s)
	}
	*b.val = v
	b.isSet = true
	return nil
}

// Type implements pflag.Value.
func (b *BytesValue) Type() string { return "bytes" }

// String implements pflag.Value.
func (b *BytesValue) String() string {
	if b.val == nil {
		return IBytes(0)
	}
	return IBytes(*b.val)
}

// IsSet returns true iff Set has succeeded at least once.
func (b *BytesValue) IsSet() bool { return b.isSet }
