// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// cprintf formats its arguments the way C printf does.
//
//	cprintf [flags] FORMAT [ARG...]
//
// Each ARG is converted to the type its specifier reads: integers and
// floats are parsed (0x and 0 prefixes are accepted), %p takes a hex
// address and %c the first character of its argument. %n stores into a
// scratch counter that --verbose reports.
package main

import (
	"context"
	"os"

	"github.com/cockroachdb/cprintf/pkg/cli/exit"
	"github.com/cockroachdb/logtags"
)

func main() {
	ctx := logtags.AddTag(context.Background(), "cprintf", nil)
	exit.WithCode(run(ctx, os.Args[1:], os.Stdout))
}
