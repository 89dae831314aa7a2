// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

// AddFlags registers the logging flags on fs:
//
//	--v=N             verbosity for V and VEventf
//	--log-format=F    line format, one of FormatNames
//	--log-threshold=S least severity written out
//	--redactable-logs keep redaction markers
//	--no-color        never color the output
func AddFlags(fs *pflag.FlagSet) {
	fs.Var(verbosityFlag{}, "v", "log verbosity level")
	fs.Var(formatFlag{}, "log-format",
		"log line format ("+strings.Join(FormatNames(), ", ")+")")
	fs.Var(thresholdFlag{}, "log-threshold", "least severity written to the log")
	fs.Var(redactableFlag{}, "redactable-logs", "keep redaction markers in log lines")
	fs.Lookup("redactable-logs").NoOptDefVal = "true"
	fs.BoolVar(&noColor, "no-color", false, "disable colors in log lines")
}

type verbosityFlag struct{}

func (verbosityFlag) String() string { return strconv.Itoa(int(logging.verbosity.Load())) }
func (verbosityFlag) Type() string   { return "level" }
func (verbosityFlag) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return errors.Newf("invalid verbosity %q", s)
	}
	SetVerbosity(int32(v))
	return nil
}

type formatFlag struct{}

func (formatFlag) String() string {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	return logging.mu.formatter.formatterName()
}
func (formatFlag) Type() string       { return "format" }
func (formatFlag) Set(s string) error { return SetFormat(s) }

type thresholdFlag struct{}

func (thresholdFlag) String() string {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	return logging.mu.threshold.String()
}
func (thresholdFlag) Type() string { return "severity" }
func (thresholdFlag) Set(s string) error {
	sev, ok := SeverityByName(s)
	if !ok {
		return errors.Newf("unknown severity %q", s)
	}
	SetThreshold(sev)
	return nil
}

type redactableFlag struct{}

func (redactableFlag) String() string {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	return strconv.FormatBool(logging.mu.redactable)
}
func (redactableFlag) Type() string { return "bool" }
func (redactableFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return errors.Wrap(err, "redactable-logs")
	}
	SetRedactable(b)
	return nil
}
