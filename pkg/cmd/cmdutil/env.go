// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cmdutil holds helpers shared by command-line tools.
package cmdutil

import (
	"os"
	"strings"
)

// EnvOrDefault returns the value of the environment variable name with
// surrounding space removed, or def if it is unset or blank.
func EnvOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
