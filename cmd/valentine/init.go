package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-valentine/internal/config"
	"github.com/alnah/go-valentine/internal/fileutil"
)

// defaultConfigFile is where init writes unless --output says otherwise.
const defaultConfigFile = "valentine.yaml"

// ErrConfigExists is returned when init would overwrite a file without --force.
var ErrConfigExists = errors.New("config file already exists")

// runInitCmd writes the default configuration as YAML.
func runInitCmd(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: init takes no arguments, got %q", ErrUsage, positional)
	}

	if fileutil.FileExists(flags.output) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(flags.output, data); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Wrote %s\n", flags.output)
	return nil
}
