package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and input fixtures
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers with the given variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// testInputs is a temporary directory with page inputs.
type testInputs struct {
	dir      string
	imageDir string
	script   string
	output   string
}

// newTestInputs writes n encoded images (the first one named like the lead
// image) and a confetti script into a temp directory.
func newTestInputs(t *testing.T, n int) testInputs {
	t.Helper()

	dir := t.TempDir()
	in := testInputs{
		dir:      dir,
		imageDir: filepath.Join(dir, "images_b64"),
		script:   filepath.Join(dir, "confetti.min.js"),
		output:   filepath.Join(dir, "out", "page.html"),
	}

	if err := os.Mkdir(in.imageDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%d.gif.b64", i)
		if i == 0 {
			name = "giphy.gif.b64"
		}
		if err := os.WriteFile(filepath.Join(in.imageDir, name), []byte("R0lGODlh"), 0o644); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := os.WriteFile(in.script, []byte("window.confetti=function(){};"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return in
}

// args returns build flags pointing at the inputs.
func (in testInputs) args(extra ...string) []string {
	base := []string{
		"--images", in.imageDir,
		"--script", in.script,
		"--no-note",
		"--output", in.output,
	}
	return append(base, extra...)
}

// assertContains fails for every want missing from got.
func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s should contain %q, got %q", label, want, got)
		}
	}
}
