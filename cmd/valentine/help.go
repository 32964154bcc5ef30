package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: valentine [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Assemble the standalone page (default)")
	fmt.Fprintln(w, "  verify      Check the page in a headless browser")
	fmt.Fprintln(w, "  init        Write the default config file")
	fmt.Fprintln(w, "  doctor      Check inputs and browser setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'valentine help <command>' for details on a specific command.")
}

// printBuildFlags prints the flags shared by build and verify.
func printBuildFlags(w io.Writer) {
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "      --images <dir>        Directory of base64 images (default images_b64)")
	fmt.Fprintln(w, "      --ext <s>             Encoded image extension (default .b64)")
	fmt.Fprintln(w, "      --lead <name>         Image shown first (default giphy.gif.b64)")
	fmt.Fprintln(w, "      --script <path>       Confetti library (default libs/confetti.min.js)")
	fmt.Fprintln(w, "      --note <path>         Markdown note (default note.md, optional)")
	fmt.Fprintln(w, "      --no-note             Do not render a note")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default valentine-standalone.html)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom style and template directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: valentine build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble the images, confetti script and markup into one HTML file.")
	fmt.Fprintln(w)
	printBuildFlags(w)
	fmt.Fprintln(w)
	printEnvVars(w)
}

// printVerifyUsage prints usage for the verify command.
func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: valentine verify [page] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open a page in headless Chrome, click through every decline and the")
	fmt.Fprintln(w, "accept button, and compare each state with the current inputs.")
	fmt.Fprintln(w, "Without a page argument, a freshly built page is checked.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (default 30s)")
	fmt.Fprintln(w, "      --screenshot <path>   Write a PNG of the final state")
	fmt.Fprintln(w)
	printBuildFlags(w)
	fmt.Fprintln(w)
	printEnvVars(w)
}

// printEnvVars lists the environment overrides.
func printEnvVars(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  VALENTINE_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  VALENTINE_STYLE           Style name or CSS file path")
	fmt.Fprintln(w, "  VALENTINE_OUTPUT          Output HTML file")
	fmt.Fprintln(w, "  VALENTINE_IMAGES          Image directory")
	fmt.Fprintln(w, "  VALENTINE_SCRIPT          Confetti library path")
	fmt.Fprintln(w, "  VALENTINE_TIMEOUT         Browser timeout for verify")
	fmt.Fprintln(w, "  VALENTINE_CONTAINER       Set to 1 to report a container in doctor")
}

// printCommandUsage prints usage for cmd, falling back to the main usage.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "build":
		printBuildUsage(w)
	case "verify":
		printVerifyUsage(w)
	case "init":
		fmt.Fprintln(w, "Usage: valentine init [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Write the default configuration as YAML.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  -o, --output <path>       Config file to write (default %s)\n", defaultConfigFile)
		fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
	case "doctor":
		fmt.Fprintln(w, "Usage: valentine doctor [--json]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check the image directory, confetti script, browser and system.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "      --json                Print the report as JSON")
	case "completion":
		printCompletionUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: valentine version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: valentine help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		printUsage(w)
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	printCommandUsage(env.Stdout, args[0])
	return ExitSuccess
}
