// Package testutil provides test utilities for dchw tests: fake external
// tools for exec-backed tests and a YAML call log for recording mocks.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// FakeToolConfig configures the behavior of a fake external tool.
type FakeToolConfig struct {
	// ExitCode is the exit code the tool returns (default 0).
	ExitCode int
	// Stdout is content the tool writes to stdout.
	Stdout string
}

// FakeTool writes an executable shell script named name into a temp
// directory and returns its path together with the path of a file that
// accumulates one line of arguments per invocation.
//
// Tests point DchExecutor.DchCmd at the returned path instead of the real
// dch binary.
func FakeTool(t *testing.T, name string, cfg FakeToolConfig) (toolPath, argsFile string) {
	t.Helper()

	dir := t.TempDir()
	toolPath = filepath.Join(dir, name)
	argsFile = filepath.Join(dir, name+".args")

	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\n", argsFile)
	if cfg.Stdout != "" {
		script += fmt.Sprintf("printf '%%s' %q\n", cfg.Stdout)
	}
	script += fmt.Sprintf("exit %d\n", cfg.ExitCode)

	if err := os.WriteFile(toolPath, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake tool %s: %v", name, err)
	}
	return toolPath, argsFile
}

// ReadArgsFile returns the recorded invocation lines of a fake tool.
func ReadArgsFile(t *testing.T, argsFile string) []string {
	t.Helper()

	data, err := os.ReadFile(argsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("reading args file: %v", err)
	}

	var lines []string
	for _, line := range splitLines(string(data)) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
