package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-valentine"
	"github.com/alnah/go-valentine/internal/fileutil"
)

// ErrWriteScreenshot indicates the screenshot could not be saved.
var ErrWriteScreenshot = errors.New("failed to write screenshot")

// verifier abstracts the browser so the command can be tested without Chrome.
type verifier interface {
	Verify(ctx context.Context, path string, want *valentine.Result) (*valentine.Report, error)
	Screenshot(ctx context.Context, path string) ([]byte, error)
	Close() error
}

// newVerifier is replaced in tests.
var newVerifier = func(timeout time.Duration) verifier {
	return valentine.NewVerifier(timeout)
}

// runVerifyCmd parses verify flags and checks a page in the browser.
func runVerifyCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseVerifyFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: verify takes at most one page, got %d", ErrUsage, len(positional))
	}

	page := ""
	if len(positional) == 1 {
		page = positional[0]
	}
	return runVerify(ctx, page, flags, env)
}

// runVerify builds the expected page from the current inputs and drives
// either the given page or a freshly built copy.
func runVerify(ctx context.Context, page string, flags *verifyFlags, env *Environment) error {
	timeout, err := resolveTimeout(flags.timeout, env)
	if err != nil {
		return err
	}

	logger := newLogger(flags.build.common, env)
	cfg, err := resolveConfig(&flags.build, env)
	if err != nil {
		return err
	}

	asm, err := valentine.NewAssembler(assemblerOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	want, err := asm.Build(ctx)
	if err != nil {
		return err
	}

	if page == "" {
		path, cleanup, err := fileutil.WriteTempFile(string(want.HTML), "html")
		if err != nil {
			return err
		}
		defer cleanup()
		page = path
		logger.Debug("verifying freshly built page", "path", page)
	}

	v := newVerifier(timeout)
	defer func() { _ = v.Close() }()

	report, err := v.Verify(ctx, page, want)
	if report != nil && !flags.build.common.quiet {
		printReport(env.Stdout, report)
	}
	if err != nil {
		return err
	}

	if flags.screenshot != "" {
		png, err := v.Screenshot(ctx, page)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFile(flags.screenshot, png); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteScreenshot, err)
		}
		if !flags.build.common.quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s (%d bytes)\n", flags.screenshot, len(png))
		}
	}
	return nil
}

// resolveTimeout picks the --timeout flag, then VALENTINE_TIMEOUT, then the
// library default.
func resolveTimeout(flagValue string, env *Environment) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if d := loadEnvConfig(env.Getenv).Timeout; d > 0 {
		return d, nil
	}
	return valentine.DefaultVerifyTimeout, nil
}

// printReport writes one line per checked step.
func printReport(w io.Writer, r *valentine.Report) {
	for _, s := range r.Steps {
		status := "OK"
		if !s.OK() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  [%s] %-13s %-11s declines=%d\n", status, s.Scenario, s.Action, s.DeclineCount)
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "         %s\n", m)
		}
	}
	if r.OK() {
		fmt.Fprintf(w, "Verified %s (%d steps)\n", r.Path, len(r.Steps))
	}
}
