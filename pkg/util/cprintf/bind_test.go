// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cprintf

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCasts(t *testing.T) {
	testCases := []struct {
		x        uint64
		n        uint
		signed   int64
		unsigned uint64
	}{
		{x: 0xff, n: 8, signed: -1, unsigned: 0xff},
		{x: 0x17f, n: 8, signed: 127, unsigned: 0x7f},
		{x: 0x8000, n: 16, signed: math.MinInt16, unsigned: 0x8000},
		{x: math.MaxUint64, n: 32, signed: -1, unsigned: math.MaxUint32},
		{x: 1 << 32, n: 32, signed: 0, unsigned: 0},
		{x: math.MaxUint64, n: 64, signed: -1, unsigned: math.MaxUint64},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.signed, castSigned(tc.x, tc.n), "%#x/%d", tc.x, tc.n)
		require.Equal(t, tc.unsigned, castUnsigned(tc.x, tc.n), "%#x/%d", tc.x, tc.n)
	}
}

func TestBindOwnership(t *testing.T) {
	testCases := []struct {
		name   string
		format string
		args   []interface{}
		want   string
	}{
		{
			// The first specifier naming an index owns it: its '*' consumes an
			// argument ahead of the value, and the width is shared.
			name:   "owner with star",
			format: "%1$*d|%1$d|%1$*d",
			args:   []interface{}{4, 42},
			want:   "  42|42|  42",
		},
		{
			// The owner has no '*', so the later '*' has no value of its own.
			name:   "owner without star",
			format: "%1$d|%1$*d",
			args:   []interface{}{5, 42},
			want:   "5|5",
		},
		{
			name:   "unreferenced slots are skipped whatever their type",
			format: "%3$d",
			args:   []interface{}{"skipped", 1.5, 7},
			want:   "7",
		},
		{
			name:   "extra arguments are ignored",
			format: "%d",
			args:   []interface{}{1, 2, 3},
			want:   "1",
		},
		{
			name:   "negative star precision is unspecified",
			format: "%.*f",
			args:   []interface{}{-3, 0.5},
			want:   "0.500000",
		},
		{
			name:   "star values are C ints",
			format: "%*d|",
			args:   []interface{}{int64(1<<32 + 3), 1},
			want:   "  1|",
		},
		{
			name:   "named types",
			format: "%d %s %.1f",
			args:   []interface{}{myInt(-4), myString("str"), myFloat(2.5)},
			want:   "-4 str 2.5",
		},
		{
			name:   "stringers and errors",
			format: "%s %s",
			args:   []interface{}{stringer{}, errString("failed")},
			want:   "stringer failed",
		},
		{
			name:   "string pointers",
			format: "%s %s",
			args:   []interface{}{ptrTo("pointed"), (*string)(nil)},
			want:   "pointed (null)",
		},
		{
			name:   "code units",
			format: "%s %ls",
			args:   []interface{}{[]uint16{'h', 'i'}, []uint32{0x1d11e}},
			want:   "hi 𝄞",
		},
		{
			name:   "integers widen to floats",
			format: "%.1f %.0e",
			args:   []interface{}{uint8(3), int64(-20)},
			want:   "3.0 -2e+01",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Sprintf(tc.format, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLayout(t *testing.T) {
	type role struct {
		spec string
		star string
	}
	layoutOf := func(format string) []role {
		specs, err := Parse(format)
		require.NoError(t, err)
		var out []role
		for _, r := range Layout(specs) {
			var name string
			if r.Spec != nil {
				name = r.Spec.String()
			}
			out = append(out, role{spec: name, star: r.Star})
		}
		return out
	}

	require.Empty(t, layoutOf("plain %% text %m"))
	require.Equal(t, []role{
		{spec: "%*.*f", star: "width"},
		{spec: "%*.*f", star: "precision"},
		{spec: "%*.*f"},
		{spec: "%s"},
	}, layoutOf("%*.*f %s"))
	require.Equal(t, []role{
		{},
		{spec: "%2$d"},
		{spec: "%3$*x", star: "width"},
		{spec: "%3$*x"},
	}, layoutOf("%3$*x %2$d %2$s"))
}

func TestBindGetNum(t *testing.T) {
	var a int
	var b int64
	var c uint8
	var d int16
	out, err := Sprintf("ab%ncd%n€%n%5d%hn", &a, &b, &c, 1, &d)
	require.NoError(t, err)
	require.Equal(t, "abcd€    1", out)
	require.Equal(t, 2, a)
	require.Equal(t, int64(4), b)
	require.Equal(t, uint8(7), c)
	require.Equal(t, int16(12), d)

	_, err = Sprintf("%n", (*int)(nil))
	require.Error(t, err)
	_, err = Sprintf("%n", new(float64))
	require.Error(t, err)
}

// TestBindErrorWritesNothing checks that a failing call leaves the buffer
// untouched.
func TestBindErrorWritesNothing(t *testing.T) {
	buf := []byte("untouched")
	n, err := Snprintf(buf, "%d %d", 1, "two")
	require.Error(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, "untouched", string(buf))
}

// TestBindLargeIndex checks that a large explicit index is rejected by
// its argument count before any per-index state is allocated.
func TestBindLargeIndex(t *testing.T) {
	specs, err := Parse("%16777216$d")
	require.NoError(t, err)
	require.Equal(t, 1<<24, ParamCount(specs))
	require.Equal(t, 0, ParamCount(nil))

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = Sprintf("%16777216$d", 1)
	runtime.ReadMemStats(&after)
	require.ErrorContains(t, err, "missing argument 16777216")
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

type myInt int16
type myString string
type myFloat float32
type stringer struct{}
type errString string

func (stringer) String() string    { return "stringer" }
func (e errString) Error() string { return string(e) }

func ptrTo(s string) *string { return &s }
