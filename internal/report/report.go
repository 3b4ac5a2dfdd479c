// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package report checks JSON inputs and reports the outcome for humans.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/creachadair/jvalue"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// A Reporter parses inputs and writes a summary of each to Out.
type Reporter struct {
	Out     io.Writer       // where summaries are written
	Logger  log.Logger      // if nil, events are not logged
	Options *jvalue.Options // parser settings; nil means defaults
	Color   bool            // whether to color the status labels
	Metrics *Metrics        // if nil, metrics are not recorded

	// now reports the current time; if nil, time.Now is used.
	now func() time.Time
}

// Result is the outcome of checking a single input.
type Result struct {
	Name    string        // the name of the input, for display
	Size    int           // the length of the input in bytes
	Elapsed time.Duration // how long the parse took
	Value   jvalue.Value  // the parsed value, if Err == nil
	Err     error         // the parse error, or nil
}

// OK reports whether the input parsed successfully.
func (r Result) OK() bool { return r.Err == nil }

// Check parses src, which is the contents of the input called name, and
// writes a summary of the outcome to r.Out. On failure the summary includes
// the error and the offending lines of src.
func (r *Reporter) Check(name string, src []byte) Result {
	logger := r.logger()
	level.Debug(logger).Log("msg", "parsing input", "name", name, "size", len(src))

	start := r.clock()
	v, err := r.Options.Parse(src)
	res := Result{Name: name, Size: len(src), Elapsed: r.clock().Sub(start), Value: v, Err: err}

	if err != nil {
		kv := []any{"msg", "parse failed", "name", name, "err", err}
		var pe *jvalue.ParseError
		if errors.As(err, &pe) {
			kv = append(kv, "kind", pe.Kind.String(), "offset", pe.Offset(), "fatal", pe.Fatal)
		}
		level.Info(logger).Log(kv...)
		r.writeFailure(res, src)
	} else {
		level.Info(logger).Log("msg", "parse ok", "name", name, "kind", v.Kind(), "elapsed", res.Elapsed)
		r.writeSuccess(res)
	}
	r.Metrics.observe(res)
	return res
}

func (r *Reporter) writeSuccess(res Result) {
	fmt.Fprintf(r.Out, "%s %s: %s %v in %v (%s/s)\n",
		r.label(color.FgGreen, "ok"), res.Name, humanize.Bytes(uint64(res.Size)),
		res.Value.Kind(), res.Elapsed.Round(time.Microsecond), throughput(res))
}

func (r *Reporter) writeFailure(res Result, src []byte) {
	fmt.Fprintf(r.Out, "%s %s: %v\n", r.label(color.FgRed, "FAIL"), res.Name, res.Err)
	var pe *jvalue.ParseError
	if errors.As(res.Err, &pe) {
		for _, line := range strings.SplitAfter(pe.Snippet(src), "\n") {
			if line != "" {
				fmt.Fprint(r.Out, "    ", line)
			}
		}
	}
}

func (r *Reporter) label(attr color.Attribute, text string) string {
	c := color.New(attr, color.Bold)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func (r *Reporter) logger() log.Logger {
	if r.Logger == nil {
		return log.NewNopLogger()
	}
	return r.Logger
}

func (r *Reporter) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// throughput renders the rate at which res was parsed, in bytes per second.
func throughput(res Result) string {
	if res.Elapsed <= 0 {
		return "∞ B"
	}
	rate := float64(res.Size) / res.Elapsed.Seconds()
	return humanize.Bytes(uint64(rate))
}
