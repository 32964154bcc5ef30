package main

// Notes:
// - We test that usage text names every command and every registered flag,
//   so help cannot drift from the FlagSets.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage lists every command
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, cmd := range commands {
		if !strings.Contains(buf.String(), "  "+cmd+" ") {
			t.Errorf("usage should list command %q", cmd)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintCommandUsage - Command help documents every flag
// ---------------------------------------------------------------------------

func TestPrintCommandUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd string
		fs  *flag.FlagSet
	}{
		{"build", buildFlagSet()},
		{"verify", verifyFlagSet()},
		{"init", initFlagSet()},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printCommandUsage(&buf, tt.cmd)
			out := buf.String()

			if !strings.Contains(out, "Usage: valentine "+tt.cmd) {
				t.Errorf("help should start with usage line, got %q", out)
			}
			tt.fs.VisitAll(func(f *flag.Flag) {
				if !strings.Contains(out, "--"+f.Name) {
					t.Errorf("help for %s is missing --%s", tt.cmd, f.Name)
				}
				if f.Shorthand != "" && !strings.Contains(out, "-"+f.Shorthand+", --"+f.Name) {
					t.Errorf("help for %s is missing -%s", tt.cmd, f.Shorthand)
				}
			})
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Help command dispatch
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitSuccess, "Usage: valentine [command]", ""},
		{"doctor", []string{"doctor"}, ExitSuccess, "Usage: valentine doctor", ""},
		{"completion", []string{"completion"}, ExitSuccess, "Usage: valentine completion", ""},
		{"version", []string{"version"}, ExitSuccess, "Usage: valentine version", ""},
		{"help", []string{"help"}, ExitSuccess, "Usage: valentine help", ""},
		{"unknown", []string{"nope"}, ExitUsage, "", "Unknown command: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" {
				assertContains(t, "stdout", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assertContains(t, "stderr", stderr.String(), tt.wantStderr)
			}
		})
	}
}
