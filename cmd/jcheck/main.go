// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jcheck parses JSON files and reports whether each is well-formed.
// When a file is malformed, jcheck prints the location of the failure and
// the lines of input around it.
//
// Usage:
//
//	jcheck [flags] [file ...]
//
// With no files, or with the file name "-", jcheck reads standard input.
// With --interactive, jcheck prompts for values at the terminal instead,
// reading more lines while the value entered so far is incomplete.
// The exit status is 0 if all inputs are valid, 1 if any input is invalid or
// cannot be read, and 2 for a usage or configuration error.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jvalue/internal/config"
	"github.com/creachadair/jvalue/internal/report"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
)

// CLI defines the command-line interface.
type CLI struct {
	Config   string `help:"Path to a YAML config file. By default, .jcheck.yml is searched for in the working directory and its parents." short:"c"`
	MaxDepth *int   `help:"Maximum nesting depth of arrays and objects (negative for no limit)." name:"max-depth"`
	Strict   bool   `help:"Reject control characters and invalid UTF-8 inside strings." short:"s"`
	TopLevel string `help:"Values accepted at the top level (any, container)." name:"top-level"`
	NoColor  bool   `help:"Disable colored output." name:"no-color"`
	LogLevel string `help:"Log level for diagnostic events." enum:"debug,info,warn,error" default:"warn" name:"log-level"`
	Debug    bool   `help:"Enable debug logging (same as --log-level=debug)." short:"d"`

	Interactive bool   `help:"Read JSON values from the terminal, checking each in turn." short:"i"`
	MetricsFile string `help:"Write Prometheus metrics for the run to this file in text format." name:"metrics-file"`

	Files []string `arg:"" optional:"" help:"JSON files to check; - means standard input."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the program with the given arguments and I/O streams, and
// returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (status int) {
	var cli CLI
	exited := false
	parser, err := kong.New(&cli,
		kong.Name("jcheck"),
		kong.Description("Check JSON inputs for well-formedness."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exited = true; status = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return 2
	}
	_, err = parser.Parse(args)
	if exited {
		return status // e.g., --help
	} else if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cli.logLevel())
	cfg, err := cli.loadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return 2
	}
	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return 2
	}
	level.Debug(logger).Log("msg", "parser options",
		"max_depth", opts.MaxDepth, "strict_strings", opts.StrictStrings, "top_level", opts.TopLevel)

	useColor := !color.NoColor
	if cfg.Color != nil {
		useColor = *cfg.Color
	}
	r := &report.Reporter{
		Out:     stdout,
		Logger:  logger,
		Options: opts,
		Color:   useColor && !cli.NoColor,
	}
	var reg *prometheus.Registry
	if cli.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		r.Metrics = report.NewMetrics(reg)
	}

	var nfail int
	if cli.Interactive {
		nfail = runInteractive(r, stdout)
	} else {
		nfail = checkFiles(r, cli.Files, stdin, stderr)
	}
	level.Debug(logger).Log("msg", "done", "failed", nfail)

	if reg != nil {
		if err := prometheus.WriteToTextfile(cli.MetricsFile, reg); err != nil {
			level.Error(logger).Log("msg", "writing metrics", "path", cli.MetricsFile, "err", err)
			fmt.Fprintf(stderr, "jcheck: %v\n", err)
			return 2
		}
	}
	if nfail != 0 {
		return 1
	}
	return 0
}

// checkFiles checks each of the named files, or standard input if there are
// none, and returns the number that could not be read or failed to parse.
func checkFiles(r *report.Reporter, files []string, stdin io.Reader, stderr io.Writer) int {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var nfail int
	for _, name := range files {
		src, err := readInput(name, stdin)
		if err != nil {
			level.Error(r.Logger).Log("msg", "reading input", "name", name, "err", err)
			fmt.Fprintf(stderr, "jcheck: %v\n", err)
			nfail++
			continue
		}
		if !r.Check(displayName(name), src).OK() {
			nfail++
		}
	}
	return nfail
}

func (c *CLI) logLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// loadConfig reads the configuration file, if any, and applies the settings
// given by flags on top of it.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	path := c.Config
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Find(wd)
		}
	}
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if c.MaxDepth != nil {
		cfg.MaxDepth = *c.MaxDepth
	}
	if c.Strict {
		cfg.StrictStrings = true
	}
	if c.TopLevel != "" {
		cfg.TopLevel = c.TopLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowWarn()
	}
	return level.NewFilter(logger, allow)
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}
