// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/internal/report"
	"github.com/peterh/liner"
)

const (
	historyFile = ".jcheck_history"
	promptMain  = "json> "
	promptCont  = "....> "
)

// A prompter reads lines of input from the user.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runInteractive reads JSON documents from the terminal and checks each one
// until the user ends the input.
func runInteractive(r *report.Reporter, stdout io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(stdout, "Enter JSON values to check; end input with Ctrl-D.")
	return interact(ln, r)
}

// interact reads and checks documents from p until it reports an error, and
// returns the number of documents that failed.
func interact(p prompter, r *report.Reporter) int {
	var nfail int
	for n := 1; ; n++ {
		src, ok := readDocument(p, r.Options)
		if !ok {
			return nfail
		}
		if strings.TrimSpace(src) == "" {
			n--
			continue
		}
		p.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if !r.Check(fmt.Sprintf("input %d", n), []byte(src)).OK() {
			nfail++
		}
	}
}

// readDocument reads lines from p until they form a complete document, or a
// document that is malformed before its end. It reports false when there is
// no further input.
func readDocument(p prompter, opts *jvalue.Options) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if err != nil {
			if b.Len() != 0 && errors.Is(err, io.EOF) {
				return b.String(), true // check what was entered so far
			}
			return "", false
		}
		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" || !incomplete(opts, src) {
			return src, true
		}
	}
}

// incomplete reports whether src fails to parse only because the input ends
// too soon, so that more lines could complete it.
func incomplete(opts *jvalue.Options, src string) bool {
	_, err := opts.ParseString(src)
	var pe *jvalue.ParseError
	return errors.As(err, &pe) && pe.Offset() >= len(src)
}
