package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds flags that select the page inputs.
type inputFlags struct {
	images string
	ext    string
	lead   string
	script string
	note   string
	noNote bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style     string // Name or path for CSS
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	input  inputFlags
	assets assetFlags
	output string
}

// verifyFlags holds all flags for the verify command.
type verifyFlags struct {
	build      buildFlags
	timeout    string
	screenshot string
}

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addInputFlags adds input selection flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.images, "images", "", "directory of base64-encoded images")
	fs.StringVar(&f.ext, "ext", "", "encoded image extension (default .b64)")
	fs.StringVar(&f.lead, "lead", "", "file name of the image shown first")
	fs.StringVar(&f.script, "script", "", "confetti library to inline")
	fs.StringVar(&f.note, "note", "", "markdown note shown under the buttons")
	fs.BoolVar(&f.noNote, "no-note", false, "do not render a note")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// registerBuildFlags registers every build flag on fs.
func registerBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addAssetFlags(fs, &f.assets)
}

// registerVerifyFlags registers every verify flag on fs.
func registerVerifyFlags(fs *flag.FlagSet, f *verifyFlags) {
	registerBuildFlags(fs, &f.build)
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.screenshot, "screenshot", "", "write a PNG screenshot to this path")
}

// registerInitFlags registers every init flag on fs.
func registerInitFlags(fs *flag.FlagSet, f *initFlags) {
	fs.StringVarP(&f.output, "output", "o", defaultConfigFile, "config file to write")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
}

// newFlagSet creates a silent FlagSet; errors are reported by the caller.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseError wraps pflag errors, keeping flag.ErrHelp recognisable.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := newFlagSet("build")
	f := &buildFlags{}
	registerBuildFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseVerifyFlags parses verify command flags and returns positional args.
func parseVerifyFlags(args []string) (*verifyFlags, []string, error) {
	fs := newFlagSet("verify")
	f := &verifyFlags{}
	registerVerifyFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	fs := newFlagSet("init")
	f := &initFlags{}
	registerInitFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}
