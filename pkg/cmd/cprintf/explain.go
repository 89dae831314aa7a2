// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"io"
	"strconv"

	"github.com/cockroachdb/cprintf/pkg/util/cprintf"
	"github.com/olekukonko/tablewriter"
)

// explain prints a table with one row per specifier of the format.
func explain(w io.Writer, specs []cprintf.FormatSpec) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"offset", "specifier", "argument", "conversion", "size"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range specs {
		param := "-"
		if s.ParamIdx >= 0 {
			param = strconv.Itoa(s.ParamIdx + 1)
		}
		table.Append([]string{
			strconv.Itoa(s.Offset), s.String(), param, s.Conversion.String(), s.Type.String(),
		})
	}
	table.Render()
}
