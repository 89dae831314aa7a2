// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exit

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	seen := map[int]string{}
	for name, c := range map[string]Code{
		"Success":                 Success(),
		"UnspecifiedError":        UnspecifiedError(),
		"UnspecifiedGoPanic":      UnspecifiedGoPanic(),
		"CommandLineFlagError":    CommandLineFlagError(),
		"FatalError":              FatalError(),
		"ArgumentConversionError": ArgumentConversionError(),
	} {
		other, dup := seen[c.Int()]
		require.False(t, dup, "%s and %s share %s", name, other, c)
		seen[c.Int()] = name
	}
	require.Equal(t, 125, ArgumentConversionError().Int())
	require.EqualValues(t, "exit code 7", redact.Sprint(FatalError()))
}
