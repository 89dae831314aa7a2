// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/logtags"
)

// FormatWithContextTags is fmt.Sprintf with the logtags of ctx prepended
// in brackets. The result carries no redaction markers.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	if tags := logtags.FromContext(ctx); tags != nil {
		buf.WriteByte('[')
		buf.WriteString(formatTags(tags))
		buf.WriteString("] ")
	}
	fmt.Fprintf(&buf, format, args...)
	return buf.String()
}

// formatTags renders tags as a comma-separated list. Single-letter keys
// are glued to their value (n1); longer keys use key=value.
func formatTags(tags *logtags.Buffer) string {
	var buf strings.Builder
	list := tags.Get()
	for i := range list {
		t := &list[i]
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		v := t.ValueStr()
		if v == "" {
			continue
		}
		if len(t.Key()) > 1 {
			buf.WriteByte('=')
		}
		buf.WriteString(v)
	}
	return buf.String()
}
