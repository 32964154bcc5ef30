//go:build integration

package valentine

// Notes:
// - Requires Chrome/Chromium (rod downloads one when none is installed).
// - One Verifier is shared by all tests in this file and closed in TestMain.
// - decodableImages are real 1x1 GIFs, so the only image error a page sees is
//   the one Verify dispatches.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// testTimeout is the standard timeout for browser operations.
const testTimeout = 30 * time.Second

var testVerifier *Verifier

func TestMain(m *testing.M) {
	testVerifier = NewVerifier(testTimeout)
	code := m.Run()
	_ = testVerifier.Close()
	os.Exit(code)
}

// decodableImages returns seven distinct 1x1 GIFs, lead image first.
func decodableImages() map[string]string {
	return map[string]string{
		"giphy.gif.b64": "R0lGODlhAQABAIAAAAD/AAAAACwAAAAAAQABAAACAkQBADs=",
		"1.gif.b64":     "R0lGODlhAQABAIAAACThRgAAACwAAAAAAQABAAACAkQBADs=",
		"2.gif.b64":     "R0lGODlhAQABAIAAAEjDjAAAACwAAAAAAQABAAACAkQBADs=",
		"3.gif.b64":     "R0lGODlhAQABAIAAAGyl0gAAACwAAAAAAQABAAACAkQBADs=",
		"4.gif.b64":     "R0lGODlhAQABAIAAAJCHGAAAACwAAAAAAQABAAACAkQBADs=",
		"5.gif.b64":     "R0lGODlhAQABAIAAALRpXgAAACwAAAAAAQABAAACAkQBADs=",
		"6.gif.b64":     "R0lGODlhAQABAIAAANhLpAAAACwAAAAAAQABAAACAkQBADs=",
	}
}

// writePage builds and writes a page from in, returning its result.
func writePage(t *testing.T, in testInputs, extra ...Option) *Result {
	t.Helper()

	asm, err := NewAssembler(in.options(extra...)...)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	result, err := asm.Write(context.Background())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return result
}

// verifyScript is an inlined confetti library that records its own calls.
const verifyScript = "window.confetti = function() { window.__confetti = (window.__confetti || 0) + 1; };"

func TestVerifier_Verify_GeneratedPage(t *testing.T) {
	in := newTestInputs(t, decodableImages(), verifyScript)
	result := writePage(t, in)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	report, err := testVerifier.Verify(ctx, result.Path, result)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("report not OK: %+v", report.Steps)
	}

	var actions []string
	for _, s := range report.Steps {
		actions = append(actions, s.Scenario+"/"+s.Action)
	}
	want := []string{
		"decline-first/load",
		"decline-first/decline",
		"decline-first/decline",
		"decline-first/image-error",
		"decline-first/decline",
		"decline-first/decline",
		"decline-first/decline",
		"decline-first/decline",
		"decline-first/accept",
		"accept-first/load",
		"accept-first/accept",
		"accept-first/decline",
		"accept-first/image-error",
	}
	if !slices.Equal(actions, want) {
		t.Errorf("steps = %v, want %v", actions, want)
	}
}

func TestVerifier_ConfettiSpyForwardsToLibrary(t *testing.T) {
	in := newTestInputs(t, decodableImages(), verifyScript)
	result := writePage(t, in)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	page, err := testVerifier.open(ctx, result.Path)
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	defer page.Close()

	if _, err := page.Eval(spyConfettiJS); err != nil {
		t.Fatalf("installing spy: %v", err)
	}
	if err := click(page, "yesButton"); err != nil {
		t.Fatalf("click() error = %v", err)
	}
	if err := click(page, "yesButton"); err != nil {
		t.Fatalf("click() error = %v", err)
	}

	res, err := page.Eval(`() => [window.__valentineConfettiCalls, window.__confetti]`)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	var calls []int
	if err := res.Value.Unmarshal(&calls); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !slices.Equal(calls, []int{1, 1}) {
		t.Errorf("spy, library calls = %v, want [1 1]", calls)
	}
}

func TestVerifier_Verify_DetectsIgnoredImageError(t *testing.T) {
	in := newTestInputs(t, decodableImages(), "")
	result := writePage(t, in)

	tampered := bytes.Replace(result.HTML, []byte(`addEventListener("error"`), []byte(`addEventListener("abort"`), 1)
	path := filepath.Join(t.TempDir(), "no-fallback.html")
	if err := os.WriteFile(path, tampered, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	report, err := testVerifier.Verify(ctx, path, result)
	if !errors.Is(err, ErrPageMismatch) {
		t.Fatalf("Verify() error = %v, want ErrPageMismatch", err)
	}
	for _, s := range report.Steps {
		if !s.OK() {
			if s.Action != "image-error" {
				t.Errorf("first failing step = %s, want image-error", s.Action)
			}
			break
		}
	}
}

func TestVerifier_Verify_DetectsDeclineAfterAccept(t *testing.T) {
	in := newTestInputs(t, decodableImages(), "")
	result := writePage(t, in)

	// Drop the accepted guard from the decline handler only.
	tampered := bytes.Replace(result.HTML,
		[]byte("if (state.accepted || state.declineCount >= page.maxDeclines)"),
		[]byte("if (state.declineCount >= page.maxDeclines)"), 1)
	if bytes.Equal(tampered, result.HTML) {
		t.Fatal("setup: decline guard not found in page")
	}
	path := filepath.Join(t.TempDir(), "no-guard.html")
	if err := os.WriteFile(path, tampered, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	report, err := testVerifier.Verify(ctx, path, result)
	if !errors.Is(err, ErrPageMismatch) {
		t.Fatalf("Verify() error = %v, want ErrPageMismatch", err)
	}
	var failed []string
	for _, s := range report.Steps {
		if !s.OK() {
			failed = append(failed, s.Scenario+"/"+s.Action)
		}
	}
	if len(failed) == 0 || failed[0] != "accept-first/decline" {
		t.Errorf("failing steps = %v, want accept-first/decline first", failed)
	}
}

func TestVerifier_Verify_DegradedPage(t *testing.T) {
	in := newTestInputs(t, nil, "")
	result := writePage(t, in)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	if _, err := testVerifier.Verify(ctx, result.Path, result); err != nil {
		t.Fatalf("Verify() on placeholder page error = %v", err)
	}
}

func TestVerifier_Verify_DetectsTamperedPage(t *testing.T) {
	in := newTestInputs(t, decodableImages(), "")
	result := writePage(t, in)

	tampered := bytes.Replace(result.HTML, []byte("+= page.growth.fontSize"), []byte("+= page.growth.height"), 1)
	path := filepath.Join(t.TempDir(), "tampered.html")
	if err := os.WriteFile(path, tampered, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := testVerifier.Verify(ctx, path, result)
	if !errors.Is(err, ErrPageMismatch) {
		t.Errorf("Verify() error = %v, want ErrPageMismatch", err)
	}
}

func TestVerifier_Verify_MissingFile(t *testing.T) {
	in := newTestInputs(t, sevenImages(), "")
	asm, err := NewAssembler(in.options()...)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	result, err := asm.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, err = testVerifier.Verify(context.Background(), filepath.Join(in.dir, "absent.html"), result)
	if !errors.Is(err, ErrPageLoad) {
		t.Errorf("Verify() error = %v, want ErrPageLoad", err)
	}
}

func TestVerifier_Screenshot(t *testing.T) {
	in := newTestInputs(t, sevenImages(), "")
	result := writePage(t, in)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	png, err := testVerifier.Screenshot(ctx, result.Path)
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("screenshot is not a PNG")
	}
}
