package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-valentine"
	"github.com/alnah/go-valentine/internal/config"
	"github.com/alnah/go-valentine/internal/logging"
)

// runBuildCmd parses build flags, assembles the page and writes it.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional)
	}
	return runBuild(ctx, flags, env)
}

// runBuild writes the page and prints the result line.
func runBuild(ctx context.Context, flags *buildFlags, env *Environment) error {
	logger := newLogger(flags.common, env)

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	asm, err := valentine.NewAssembler(assemblerOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	result, err := asm.Write(ctx)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%d bytes)\n", result.Path, result.Size)
	}
	return nil
}

// newLogger builds the CLI logger from the verbosity flags.
func newLogger(f commonFlags, env *Environment) *slog.Logger {
	return logging.New(logging.LevelFor(f.quiet, f.verbose), env.Stderr)
}

// resolveConfig loads the config file (if any), then applies environment
// variables and flags, in that order.
func resolveConfig(flags *buildFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, &configNotFoundError{name: name, err: err}
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags over cfg.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.input.images != "" {
		cfg.Input.ImageDir = flags.input.images
	}
	if flags.input.ext != "" {
		cfg.Input.ImageExt = flags.input.ext
	}
	if flags.input.lead != "" {
		cfg.Input.LeadImage = flags.input.lead
	}
	if flags.input.script != "" {
		cfg.Input.Script = flags.input.script
	}
	if flags.input.note != "" {
		cfg.Input.Note = flags.input.note
	}
	if flags.input.noNote {
		cfg.Input.Note = ""
	}
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.noStyle {
		cfg.Assets.Style = ""
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// assemblerOptions translates cfg into library options.
func assemblerOptions(cfg *config.Config, logger *slog.Logger) []valentine.Option {
	tbl := cfg.Table()
	page := valentine.PageText{
		Lang:            cfg.Page.Lang,
		Title:           cfg.Page.Title,
		Description:     cfg.Page.Description,
		ThemeColor:      cfg.Page.ThemeColor,
		Question:        tbl.Question,
		Celebration:     tbl.Celebration,
		AcceptLabel:     cfg.Page.AcceptLabel,
		DeclineLabels:   tbl.DeclineLabels,
		ImageAlt:        tbl.ImageAlt,
		FallbackAlt:     tbl.FallbackAlt,
		ConfettiWarning: cfg.Page.ConfettiWarning,
	}

	return []valentine.Option{
		valentine.WithImageDir(cfg.Input.ImageDir),
		valentine.WithImageExt(cfg.Input.ImageExt),
		valentine.WithLeadImage(cfg.Input.LeadImage),
		valentine.WithScriptPath(cfg.Input.Script),
		valentine.WithNotePath(cfg.Input.Note),
		valentine.WithOutputPath(cfg.Output.Path),
		valentine.WithAssetPath(cfg.Assets.BasePath),
		valentine.WithStyle(cfg.Assets.Style),
		valentine.WithPage(page),
		valentine.WithLogger(logger),
	}
}
