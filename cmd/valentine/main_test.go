package main

// Notes:
// - runMain: we test dispatch, exit codes and the messages users see. Builds
//   run against temp directories with explicit input flags so the working
//   directory is never read.
// - isCommand: we test command name matching.
// - verify is covered in verify_test.go with a fake browser.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"build", true},
		{"verify", true},
		{"init", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"convert", false},
		{"--output", false},
		{"", false},
		{"Build", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch, messages and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "version command exits 0",
			args:         []string{"version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"valentine dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: valentine", "Commands:"},
		},
		{
			name:         "help verify shows verify help",
			args:         []string{"help", "verify"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: valentine verify", "--screenshot"},
		},
		{
			name:         "help for unknown command exits with ExitUsage",
			args:         []string{"help", "convert"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: convert"},
		},
		{
			name:         "--help on default build prints build usage",
			args:         []string{"--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: valentine build"},
		},
		{
			name:         "init --help prints init usage",
			args:         []string{"init", "-h"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: valentine init"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage", "valentine help build"},
		},
		{
			name:         "positional argument to build exits with ExitUsage",
			args:         []string{"build", "extra"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"takes no arguments"},
		},
		{
			name:         "unsupported shell exits with ExitUsage",
			args:         []string{"completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "missing config exits with ExitUsage and a hint",
			args:         []string{"--config", "no-such-valentine-config"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "valentine init"},
		},
		{
			name:         "invalid timeout exits with ExitUsage",
			args:         []string{"verify", "--timeout", "soon"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)

			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			assertContains(t, "stdout", stdout.String(), tt.wantInStdout...)
			assertContains(t, "stderr", stderr.String(), tt.wantInStderr...)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - Building a page end to end
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	t.Run("writes the page and reports its size", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		env, stdout, stderr := testEnv(nil)

		code := runMain(context.Background(), in.args(), env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}

		data, err := os.ReadFile(in.output)
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		html := string(data)
		assertContains(t, "page", html,
			"<!DOCTYPE html>",
			`id="imageDisplay"`,
			"data:image/gif;base64,R0lGODlh",
			"window.confetti=function(){};",
		)
		assertContains(t, "stdout", stdout.String(), "Wrote "+in.output)
	})

	t.Run("explicit build command behaves like the default", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), append([]string{"build"}, in.args()...), env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}
		if _, err := os.Stat(in.output); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("quiet suppresses the result line", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		env, stdout, _ := testEnv(nil)

		if code := runMain(context.Background(), in.args("--quiet"), env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", stdout.String())
		}
	})

	t.Run("too few images exits with ExitIO and a hint", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 3)
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), in.args(), env)
		if code != ExitIO {
			t.Fatalf("runMain() = %d, want %d", code, ExitIO)
		}
		assertContains(t, "stderr", stderr.String(), "too few images", "hint:")
		if _, err := os.Stat(in.output); !os.IsNotExist(err) {
			t.Errorf("output should not exist, stat error = %v", err)
		}
	})

	t.Run("missing image directory still builds", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 0)
		env, _, stderr := testEnv(nil)

		args := in.args("--images", filepath.Join(in.dir, "absent"))
		if code := runMain(context.Background(), args, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}
	})

	t.Run("environment selects the output", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		envOut := filepath.Join(in.dir, "from-env.html")
		env, _, stderr := testEnv(map[string]string{
			"VALENTINE_OUTPUT": envOut,
			"VALENTINE_IMAGES": in.imageDir,
			"VALENTINE_SCRIPT": in.script,
		})

		if code := runMain(context.Background(), []string{"--no-note"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}
		if _, err := os.Stat(envOut); err != nil {
			t.Errorf("output not written to env path: %v", err)
		}
	})

	t.Run("flags override the environment", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		envOut := filepath.Join(in.dir, "from-env.html")
		env, _, _ := testEnv(map[string]string{"VALENTINE_OUTPUT": envOut})

		if code := runMain(context.Background(), in.args(), env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
		}
		if _, err := os.Stat(envOut); !os.IsNotExist(err) {
			t.Errorf("env output should not be written, stat error = %v", err)
		}
		if _, err := os.Stat(in.output); err != nil {
			t.Errorf("flag output not written: %v", err)
		}
	})

	t.Run("config file supplies page text", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		cfgPath := filepath.Join(in.dir, "custom.yaml")
		cfg := "page:\n  question: \"Be mine?\"\n  acceptLabel: \"Yes\"\n"
		if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		env, _, stderr := testEnv(nil)

		code := runMain(context.Background(), in.args("--config", cfgPath), env)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}
		data, err := os.ReadFile(in.output)
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		assertContains(t, "page", string(data), "Be mine?", ">Yes<")
	})

	t.Run("unknown VALENTINE_ variable warns", func(t *testing.T) {
		t.Parallel()

		in := newTestInputs(t, 7)
		env, _, stderr := testEnv(map[string]string{"VALENTINE_OUTPUTS": "x"})

		if code := runMain(context.Background(), in.args(), env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stderr.String(), "VALENTINE_OUTPUTS") {
			t.Errorf("stderr should warn about VALENTINE_OUTPUTS, got %q", stderr.String())
		}
	})
}
