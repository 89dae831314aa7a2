// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"syscall"
	"time"

	"github.com/cockroachdb/cprintf/pkg/cli/exit"
	"github.com/cockroachdb/cprintf/pkg/cmd/cmdutil"
	"github.com/cockroachdb/cprintf/pkg/util/cprintf"
	"github.com/cockroachdb/cprintf/pkg/util/humanizeutil"
	"github.com/cockroachdb/cprintf/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// charsetEnv names the environment variable holding the default --charset.
const charsetEnv = "CPRINTF_CHARSET"

var (
	errFlag       = errors.New("command-line flag error")
	errConversion = errors.New("argument conversion error")
)

type options struct {
	bufferSize int64
	sizeFlag   *humanizeutil.BytesValue
	measure    bool
	explain    bool
	charset    string
	errno      int
	verbose    bool
}

// run executes the command line args and returns the code the process
// should exit with.
func run(ctx context.Context, args []string, stdout io.Writer) exit.Code {
	var opts options
	cmd := newRootCmd(&opts, stdout)
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exit.Success()
	}
	log.Errorf(ctx, "%v", err)
	for _, h := range errors.GetAllHints(err) {
		log.Errorf(ctx, "HINT: %s", h)
	}
	switch {
	case errors.Is(err, errFlag):
		return exit.CommandLineFlagError()
	case errors.Is(err, errConversion):
		return exit.ArgumentConversionError()
	}
	return exit.UnspecifiedError()
}

func newRootCmd(opts *options, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cprintf [flags] FORMAT [ARG...]",
		Short: "format arguments the way C printf does",
		Long: `
Format ARGs under the control of FORMAT, following the C printf grammar:

  %[N$][flags][width][.precision][length]conversion

Each ARG is parsed into the type its specifier reads. The output goes to
stdout without a trailing newline.
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.Mark(errors.New("missing FORMAT argument"), errFlag)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrintf(cmd.Context(), opts, stdout, args[0], args[1:])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, errFlag)
	})

	fs := cmd.Flags()
	// Arguments after FORMAT may start with '-'.
	fs.SetInterspersed(false)
	opts.sizeFlag = humanizeutil.NewBytesValue(&opts.bufferSize)
	fs.Var(opts.sizeFlag, "buffer-size",
		"format into a buffer of this size, truncating like snprintf (e.g. 64, 1KiB)")
	fs.BoolVar(&opts.measure, "measure", false,
		"print the length of the complete output instead of the output")
	fs.BoolVar(&opts.explain, "explain", false,
		"print the specifiers of FORMAT as a table instead of formatting")
	fs.StringVar(&opts.charset, "charset", cmdutil.EnvOrDefault(charsetEnv, "utf-8"),
		"output character set: utf-8 or an IANA single-byte code page (default from "+charsetEnv+")")
	fs.IntVar(&opts.errno, "errno", 0, "error number %m describes")
	fs.BoolVar(&opts.verbose, "verbose", false, "log the parsed format and the %n results")
	log.AddFlags(fs)
	return cmd
}

func runPrintf(
	ctx context.Context, opts *options, stdout io.Writer, format string, strArgs []string,
) error {
	if opts.verbose {
		defer log.SetThreshold(log.Severity_INFO)()
		if !log.V(1) {
			defer log.SetVerbosity(log.SetVerbosity(1))
		}
	}
	cm, err := lookupCharset(opts.charset)
	if err != nil {
		return errors.Mark(err, errFlag)
	}
	printerOpts := []cprintf.Option{cprintf.WithNarrowCharset(cm)}
	if opts.errno != 0 {
		printerOpts = append(printerOpts, cprintf.WithErrno(syscall.Errno(opts.errno)))
	}
	p := cprintf.New(printerOpts...)

	specs, err := cprintf.Parse(format)
	if err != nil {
		return errors.Mark(err, errConversion)
	}
	if opts.explain {
		explain(stdout, specs)
		return nil
	}
	for _, s := range specs {
		log.VEventf(ctx, 1, "%s at offset %d reads parameter %d", s, s.Offset, s.ParamIdx+1)
	}
	args, counts, err := convertArgs(ctx, specs, strArgs)
	if err != nil {
		return errors.Mark(err, errConversion)
	}

	start := time.Now()
	var out []byte
	var n int
	if opts.sizeFlag.IsSet() {
		buf := make([]byte, opts.bufferSize)
		if n, err = p.Vsnprintf(buf, format, args); err != nil {
			return errors.Mark(err, errConversion)
		}
		out = buf
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			out = buf[:i]
		}
		if n >= len(buf) {
			log.Warningf(ctx, "output truncated to %s of %s",
				humanizeutil.IBytes(int64(len(out))), humanizeutil.IBytes(int64(n)))
		}
	} else {
		buf, size, err := p.Vasprintf(format, args)
		if err != nil {
			return errors.Mark(err, errConversion)
		}
		out, n = buf[:size-1], size-1
	}
	log.Infof(ctx, "formatted %d specifiers into %d bytes in %s",
		len(specs), n, humanizeutil.Duration(time.Since(start)))
	for _, c := range counts {
		log.Infof(ctx, "%s stored %d", c.spec, *c.value)
	}

	if opts.measure {
		_, err = fmt.Fprintln(stdout, n)
		return err
	}
	_, err = stdout.Write(out)
	return err
}
