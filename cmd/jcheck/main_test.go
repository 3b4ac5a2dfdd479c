// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Write %q: %v", path, err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"a": [1, 2, {"b": null}]}`)
	bad := writeFile(t, dir, "bad.json", "[1,\n 2,\n]")
	scalar := writeFile(t, dir, "scalar.json", `"hello"`)
	ctrl := writeFile(t, dir, "ctrl.json", "\"a\tb\"")
	deep := writeFile(t, dir, "deep.json", "[[[[1]]]]")
	cfg := writeFile(t, dir, "strict.yml", "strict_strings: true\nmax_depth: 3\n")
	badCfg := writeFile(t, dir, "bad.yml", "top_level: sometimes\n")

	tests := []struct {
		name   string
		args   []string
		stdin  string
		status int
		out    []string // substrings expected in stdout
	}{
		{"Good", []string{good}, "", 0, []string{"ok " + good}},
		{"Bad", []string{bad}, "", 1, []string{"FAIL " + bad, "trailing comma", "3 | ]"}},
		{"Mixed", []string{good, bad}, "", 1, []string{"ok " + good, "FAIL " + bad}},
		{"Stdin", nil, "[true]", 0, []string{"ok <stdin>"}},
		{"StdinDash", []string{"-"}, "tru", 1, []string{"FAIL <stdin>"}},
		{"Missing", []string{filepath.Join(dir, "nonesuch.json")}, "", 1, nil},

		{"TopLevelAny", []string{scalar}, "", 0, []string{"ok"}},
		{"TopLevelContainer", []string{"--top-level=container", scalar}, "", 1, []string{"expected object, array, or null"}},
		{"Lenient", []string{ctrl}, "", 0, []string{"ok"}},
		{"StrictFlag", []string{"--strict", ctrl}, "", 1, []string{"unescaped control character"}},
		{"MaxDepthFlag", []string{"--max-depth=2", deep}, "", 1, []string{"nested more than 2 deep"}},
		{"ConfigFile", []string{"--config", cfg, ctrl, deep}, "", 1, []string{
			"unescaped control character", "nested more than 3 deep",
		}},
		{"FlagOverridesConfig", []string{"-c", cfg, "--max-depth=-1", deep}, "", 0, []string{"ok"}},

		{"BadConfig", []string{"--config", badCfg, good}, "", 2, nil},
		{"BadTopLevel", []string{"--top-level=scalar", good}, "", 2, nil},
		{"BadFlag", []string{"--nonesuch"}, "", 2, nil},
		{"Help", []string{"--help"}, "", 0, []string{"Usage: jcheck"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"--no-color"}, tc.args...)
			status := run(args, strings.NewReader(tc.stdin), &stdout, &stderr)
			if status != tc.status {
				t.Errorf("run %q: got status %d, want %d\nstdout:\n%s\nstderr:\n%s",
					tc.args, status, tc.status, stdout.String(), stderr.String())
			}
			for _, want := range tc.out {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("run %q: output missing %q:\n%s", tc.args, want, stdout.String())
				}
			}
		})
	}
}

func TestDebugLogging(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[]`)

	var stdout, stderr bytes.Buffer
	if status := run([]string{"--no-color", "--debug", good}, nil, &stdout, &stderr); status != 0 {
		t.Fatalf("run: got status %d, want 0\n%s", status, stderr.String())
	}
	for _, want := range []string{"level=debug", `msg="parser options"`, `msg="parse ok"`} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("Log output missing %q:\n%s", want, stderr.String())
		}
	}

	stderr.Reset()
	if status := run([]string{"--no-color", good}, nil, &stdout, &stderr); status != 0 {
		t.Fatalf("run: got status %d, want 0", status)
	}
	if stderr.Len() != 0 {
		t.Errorf("Unexpected log output at the default level:\n%s", stderr.String())
	}
}

func TestMetricsFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[1, 2, 3]`)
	bad := writeFile(t, dir, "bad.json", `{"a" 1}`)
	mpath := filepath.Join(dir, "jcheck.prom")

	var stdout, stderr bytes.Buffer
	status := run([]string{"--no-color", "--metrics-file", mpath, good, bad}, nil, &stdout, &stderr)
	if status != 1 {
		t.Errorf("run: got status %d, want 1\n%s", status, stderr.String())
	}
	data, err := os.ReadFile(mpath)
	if err != nil {
		t.Fatalf("Read metrics: %v", err)
	}
	for _, want := range []string{
		`jcheck_inputs_total{result="ok"} 1`,
		`jcheck_inputs_total{result="fail"} 1`,
		`jcheck_parse_failures_total{kind="structural violation"} 1`,
		`jcheck_input_bytes_total 16`,
		`jcheck_parse_duration_seconds_count 2`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Metrics missing %q:\n%s", want, data)
		}
	}
}
