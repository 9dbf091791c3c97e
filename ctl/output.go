// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ctl

import (
	"encoding/json"
	"fmt"
	"io"
)

// output writes command results as text lines or a single JSON document.
type output struct {
	format  string
	w       io.Writer
	errW    io.Writer
	verbose bool
}

func newOutput(opts *RootOptions, w, errW io.Writer) *output {
	return &output{format: opts.Format, w: w, errW: errW, verbose: opts.Verbose}
}

// result prints v as JSON, or the text line when the format is text.
func (o *output) result(v interface{}, text string, args ...interface{}) error {
	if o.format == "json" {
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintf(o.w, text+"\n", args...)
	return err
}

// logf writes to stderr in verbose mode so JSON on stdout stays clean.
func (o *output) logf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(o.errW, format+"\n", args...)
	}
}
