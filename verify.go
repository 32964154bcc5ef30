package valentine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-valentine/internal/interaction"
	"github.com/alnah/go-valentine/internal/process"
)

// DefaultVerifyTimeout bounds page loading when the context has no deadline.
const DefaultVerifyTimeout = 30 * time.Second

// readStateJS collects the observable page state.
const readStateJS = `() => {
  const img = document.getElementById("imageDisplay");
  const yes = document.getElementById("yesButton");
  const no = document.getElementById("noButton");
  const buttons = document.getElementById("responseButtons");
  return {
    src: img.getAttribute("src") || "",
    alt: img.getAttribute("alt") || "",
    heading: document.getElementById("valentineQuestion").textContent,
    declineLabel: no.textContent,
    height: yes.style.height,
    width: yes.style.width,
    fontSize: yes.style.fontSize,
    buttonsHidden: buttons.style.display === "none",
    confettiCalls: window.__valentineConfettiCalls || 0
  };
}`

// spyConfettiJS counts calls to the global confetti function and forwards
// them to the inlined library when one is present.
const spyConfettiJS = `() => {
  const inner = window.confetti;
  window.__valentineConfettiCalls = 0;
  window.confetti = function () {
    window.__valentineConfettiCalls++;
    if (typeof inner === "function") {
      return inner.apply(this, arguments);
    }
  };
}`

// imageErrorJS fires the load failure the page handles for broken images.
const imageErrorJS = `() => {
  document.getElementById("imageDisplay").dispatchEvent(new Event("error"));
}`

// imageErrorAfter is the decline count at which Verify simulates a failed
// image load.
const imageErrorAfter = 2

// pageState is the DOM state read back from the browser.
type pageState struct {
	Src           string `json:"src"`
	Alt           string `json:"alt"`
	Heading       string `json:"heading"`
	DeclineLabel  string `json:"declineLabel"`
	Height        string `json:"height"`
	Width         string `json:"width"`
	FontSize      string `json:"fontSize"`
	ButtonsHidden bool   `json:"buttonsHidden"`
	ConfettiCalls int    `json:"confettiCalls"`
}

// Scenario names for StepReport.
const (
	ScenarioDeclineFirst = "decline-first"
	ScenarioAcceptFirst  = "accept-first"
)

// StepReport is the outcome of one checked step.
type StepReport struct {
	Scenario     string
	Action       string // "load", "decline", "image-error" or "accept"
	DeclineCount int
	Mismatches   []string
}

// OK reports whether the step matched.
func (s StepReport) OK() bool {
	return len(s.Mismatches) == 0
}

// Report summarises a verification run.
type Report struct {
	Path  string
	Steps []StepReport
}

// OK reports whether every step matched.
func (r *Report) OK() bool {
	for _, s := range r.Steps {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Verifier drives generated pages in headless Chrome.
// Rod downloads Chromium on first use if no browser is found.
type Verifier struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// NewVerifier creates a Verifier. A non-positive timeout selects
// DefaultVerifyTimeout. The browser starts on first use.
func NewVerifier(timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	return &Verifier{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (v *Verifier) ensureBrowser() error {
	if v.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	v.launcher = l
	v.browser = rod.New().ControlURL(u)
	if err := v.browser.Connect(); err != nil {
		v.browser = nil
		v.killBrowser()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (v *Verifier) Close() error {
	var err error
	if v.browser != nil {
		err = v.browser.Close()
		v.browser = nil
	}
	v.killBrowser()
	return err
}

// killBrowser stops the launched process tree and removes its profile.
func (v *Verifier) killBrowser() {
	if v.launcher == nil {
		return
	}
	process.KillProcessGroup(v.launcher.PID())
	v.launcher.Kill()
	v.launcher.Cleanup()
	v.launcher = nil
}

// open loads a local HTML file in a new tab.
func (v *Verifier) open(ctx context.Context, path string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := v.ensureBrowser(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	page, err := v.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(abs)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout := v.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return page.Context(ctx), nil
}

// Verify drives the page at path through two scenarios and compares the
// state after every event with the state expected from want.
//
// The decline-first scenario clicks decline one time more than the page
// allows, simulates a failed image load after the second decline, and then
// accepts. The accept-first scenario reloads the page, accepts at once,
// checks that a later decline changes nothing, and simulates another image
// failure. Returns ErrPageMismatch with
// the full report when any step differs.
func (v *Verifier) Verify(ctx context.Context, path string, want *Result) (*Report, error) {
	if want == nil || len(want.table.DeclineLabels) == 0 {
		return nil, fmt.Errorf("%w: expected result must come from Assembler.Build", ErrPageMismatch)
	}

	report := &Report{Path: path}
	scenarios := []struct {
		name string
		run  func(*pageRun) error
	}{
		{ScenarioDeclineFirst, declineFirst},
		{ScenarioAcceptFirst, acceptFirst},
	}
	for _, sc := range scenarios {
		if err := v.runScenario(ctx, path, want, report, sc.name, sc.run); err != nil {
			return nil, err
		}
	}

	if !report.OK() {
		return report, fmt.Errorf("%w: %s", ErrPageMismatch, report.firstMismatch())
	}
	return report, nil
}

// pageRun is one scenario driving a freshly loaded page.
type pageRun struct {
	scenario string
	page     *rod.Page
	machine  *interaction.Machine
	want     *Result
	report   *Report
}

func (v *Verifier) runScenario(ctx context.Context, path string, want *Result, report *Report, name string, run func(*pageRun) error) error {
	page, err := v.open(ctx, path)
	if err != nil {
		return err
	}
	defer page.Close()

	if _, err := page.Eval(spyConfettiJS); err != nil {
		return fmt.Errorf("%w: installing confetti spy: %v", ErrPageLoad, err)
	}

	r := &pageRun{
		scenario: name,
		page:     page,
		machine:  interaction.NewMachine(want.table),
		want:     want,
		report:   report,
	}
	if err := r.check("load"); err != nil {
		return err
	}
	return run(r)
}

// declineFirst declines past the limit with one simulated image failure,
// then accepts.
func declineFirst(r *pageRun) error {
	for range r.want.table.MaxDeclines + 1 {
		if err := r.decline(); err != nil {
			return err
		}
		if r.machine.State().DeclineCount == imageErrorAfter {
			if err := r.imageError(); err != nil {
				return err
			}
		}
	}
	return r.accept()
}

// acceptFirst accepts before any decline, checks decline is inert, and
// simulates a failed image load on the accepted page.
func acceptFirst(r *pageRun) error {
	if err := r.accept(); err != nil {
		return err
	}
	if err := r.decline(); err != nil {
		return err
	}
	return r.imageError()
}

func (r *pageRun) decline() error {
	if err := click(r.page, "noButton"); err != nil {
		return err
	}
	r.machine.Decline()
	return r.check("decline")
}

func (r *pageRun) accept() error {
	if err := click(r.page, "yesButton"); err != nil {
		return err
	}
	r.machine.Accept()
	return r.check("accept")
}

func (r *pageRun) imageError() error {
	if _, err := r.page.Eval(imageErrorJS); err != nil {
		return fmt.Errorf("%w: dispatching image error: %v", ErrPageLoad, err)
	}
	r.machine.ImageError()
	return r.check("image-error")
}

// check reads the page and records the comparison with the machine. A page
// whose image failed to load on its own has already switched to the
// fallback; the machine follows it so later steps expect the same.
func (r *pageRun) check(action string) error {
	got, err := readState(r.page)
	if err != nil {
		return err
	}
	if showsFallback(got, r.want) {
		r.machine.ImageError()
	}
	step := compareState(action, r.machine.State(), got, r.want)
	step.Scenario = r.scenario
	r.report.Steps = append(r.report.Steps, step)
	return nil
}

// Screenshot opens the page at path and captures a PNG of the viewport.
func (v *Verifier) Screenshot(ctx context.Context, path string) ([]byte, error) {
	page, err := v.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return png, nil
}

// click dispatches a click through the DOM, so a growing sibling button
// cannot cover the target.
func click(page *rod.Page, id string) error {
	if _, err := page.Eval(`(id) => document.getElementById(id).click()`, id); err != nil {
		return fmt.Errorf("%w: clicking #%s: %v", ErrPageLoad, id, err)
	}
	return nil
}

func readState(page *rod.Page) (pageState, error) {
	var st pageState
	res, err := page.Eval(readStateJS)
	if err != nil {
		return st, fmt.Errorf("%w: reading state: %v", ErrPageLoad, err)
	}
	if err := res.Value.Unmarshal(&st); err != nil {
		return st, fmt.Errorf("%w: decoding state: %v", ErrPageLoad, err)
	}
	return st, nil
}

// showsFallback reports whether the page displays the fallback image with the
// fallback description.
func showsFallback(got pageState, want *Result) bool {
	return got.Alt == want.table.FallbackAlt &&
		got.Src == imageAt(want.Images, want.table.FallbackImage)
}

// compareState lists the differences between the browser and the machine.
func compareState(action string, exp interaction.State, got pageState, want *Result) StepReport {
	step := StepReport{Action: action, DeclineCount: exp.DeclineCount}
	mismatch := func(field, gotVal, wantVal string) {
		step.Mismatches = append(step.Mismatches, fmt.Sprintf("%s: got %q, want %q", field, gotVal, wantVal))
	}

	if wantSrc := imageAt(want.Images, exp.ImageIndex); got.Src != wantSrc {
		mismatch("image", abbreviate(got.Src), abbreviate(wantSrc))
	}
	if got.Alt != exp.ImageAlt {
		mismatch("image alt", got.Alt, exp.ImageAlt)
	}

	if got.Heading != exp.Heading {
		mismatch("heading", got.Heading, exp.Heading)
	}
	if exp.ButtonsVisible == got.ButtonsHidden {
		mismatch("buttons hidden", fmt.Sprint(got.ButtonsHidden), fmt.Sprint(!exp.ButtonsVisible))
	}

	if !exp.Accepted {
		if got.DeclineLabel != exp.DeclineLabel {
			mismatch("decline label", got.DeclineLabel, exp.DeclineLabel)
		}
	}

	// Inline sizes are only set once the page script has grown the button.
	if exp.DeclineCount > 0 {
		size := want.table.SizeAfter(exp.DeclineCount)
		if w := px(size.Height); got.Height != w {
			mismatch("accept height", got.Height, w)
		}
		if w := px(size.Width); got.Width != w {
			mismatch("accept width", got.Width, w)
		}
		if w := px(size.FontSize); got.FontSize != w {
			mismatch("accept font size", got.FontSize, w)
		}
	}

	wantCalls := 0
	if exp.ConfettiFired {
		wantCalls = 1
	}
	if got.ConfettiCalls != wantCalls {
		mismatch("confetti calls", fmt.Sprint(got.ConfettiCalls), fmt.Sprint(wantCalls))
	}

	return step
}

func (r *Report) firstMismatch() string {
	for _, s := range r.Steps {
		if !s.OK() {
			return fmt.Sprintf("%s: %s after %d declines: %s", s.Scenario, s.Action, s.DeclineCount, strings.Join(s.Mismatches, "; "))
		}
	}
	return ""
}

func imageAt(images []string, i int) string {
	if i < 0 || i >= len(images) {
		return ""
	}
	return images[i]
}

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}

// abbreviate shortens data URLs for messages.
func abbreviate(s string) string {
	const keep = 48
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "..."
}
