// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"encoding/json"
	"strconv"
	"time"
)

// formatJSON writes one JSON object per line.
type formatJSON struct{}

func (formatJSON) formatterName() string { return "json" }

type jsonEntry struct {
	Severity   string            `json:"severity"`
	Timestamp  string            `json:"timestamp"`
	File       string            `json:"file"`
	Line       int               `json:"line"`
	Counter    uint64            `json:"counter"`
	Tags       map[string]string `json:"tags,omitempty"`
	Redactable bool              `json:"redactable,omitempty"`
	Message    string            `json:"message"`
}

func (formatJSON) formatEntry(entry logEntry, redactable bool) []byte {
	je := jsonEntry{
		Severity:   entry.sev.String(),
		Timestamp:  entry.ts.UTC().Format(time.RFC3339Nano),
		File:       entry.file,
		Line:       entry.line,
		Counter:    entry.counter,
		Redactable: redactable,
		Message:    renderPayload(entry, redactable),
	}
	if entry.tags != nil {
		list := entry.tags.Get()
		je.Tags = make(map[string]string, len(list))
		for i := range list {
			je.Tags[list[i].Key()] = list[i].ValueStr()
		}
	}
	buf, err := json.Marshal(je)
	if err != nil {
		// Only reachable with a broken encoder; keep the line parseable.
		buf = []byte(`{"severity":"ERROR","message":` + strconv.Quote(err.Error()) + `}`)
	}
	return append(buf, '\n')
}
