package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// shells lists every supported shell, in help order.
var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values, if any
	// FilePattern is set when the command takes a file argument.
	FilePattern string
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"ext": {Values: []string{".b64", ".base64", ".txt"}},

	"config":     {FileGlob: "*.yaml,*.yml"},
	"style":      {FileGlob: "*.css"},
	"script":     {FileGlob: "*.js"},
	"note":       {FileGlob: "*.md"},
	"screenshot": {FileGlob: "*.png"},

	"images":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// buildFlagSet returns the FlagSet parseBuildFlags uses.
func buildFlagSet() *flag.FlagSet {
	fs := newFlagSet("build")
	registerBuildFlags(fs, &buildFlags{})
	return fs
}

// verifyFlagSet returns the FlagSet parseVerifyFlags uses.
func verifyFlagSet() *flag.FlagSet {
	fs := newFlagSet("verify")
	registerVerifyFlags(fs, &verifyFlags{})
	return fs
}

// initFlagSet returns the FlagSet parseInitFlags uses.
func initFlagSet() *flag.FlagSet {
	fs := newFlagSet("init")
	registerInitFlags(fs, &initFlags{})
	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	return []commandDef{
		{Name: "build", Desc: "Assemble the standalone page", Flags: extractFlagsFromFlagSet(buildFlagSet())},
		{Name: "verify", Desc: "Check the page in a headless browser", Flags: extractFlagsFromFlagSet(verifyFlagSet()), FilePattern: "*.html"},
		{Name: "init", Desc: "Write the default config file", Flags: extractFlagsFromFlagSet(initFlagSet())},
		{Name: "doctor", Desc: "Check inputs and browser setup", Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print the report as JSON"}}},
		{Name: "completion", Desc: "Generate shell completion script", Args: shellNames},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: commands},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		generateBash(&b, cmds)
	case ShellZsh:
		generateZsh(&b, cmds)
	case ShellFish:
		generateFish(&b, cmds)
	case ShellPowerShell:
		generatePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// flagWords returns every spelling of the flags, long first.
func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// commandNames returns the names of cmds.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// valueFlags returns the flags that take an argument with special completion,
// deduplicated across commands.
func valueFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]bool)
	var out []flagDef
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type == flagString || f.Type == flagBool || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			out = append(out, f)
		}
	}
	return out
}

func generateBash(b *strings.Builder, cmds []commandDef) {
	names := strings.Join(commandNames(cmds), " ")

	b.WriteString("# bash completion for valentine\n\n")
	b.WriteString("_valentine_completions() {\n")
	b.WriteString("    local cur prev cmd w\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for w in \"${COMP_WORDS[@]:1:COMP_CWORD-1}\"; do\n")
	fmt.Fprintf(b, "        case \"$w\" in %s) cmd=\"$w\"; break ;; esac\n", strings.ReplaceAll(names, " ", "|"))
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range valueFlags(cmds) {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		fmt.Fprintf(b, "        %s)\n", pattern)
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(f.Values, " "))
		case flagDir:
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
		case flagFile:
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
			for _, glob := range strings.Split(f.FileGlob, ",") {
				fmt.Fprintf(b, "            COMPREPLY+=( $(compgen -f -X '!%s' -- \"$cur\") )\n", glob)
			}
		}
		b.WriteString("            return ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	b.WriteString("        \"\")\n")
	fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s %s\" -- \"$cur\") ) ;;\n",
		names, strings.Join(flagWords(cmds[0].Flags), " "))
	for _, c := range cmds {
		words := append(flagWords(c.Flags), c.Args...)
		fmt.Fprintf(b, "        %s)\n", c.Name)
		fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )", strings.Join(words, " "))
		if c.FilePattern != "" {
			fmt.Fprintf(b, "\n            COMPREPLY+=( $(compgen -f -X '!%s' -- \"$cur\") )", c.FilePattern)
		}
		b.WriteString(" ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _valentine_completions valentine\n")
}

// zshEscape makes s safe inside a single-quoted _arguments option.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// zshAction returns the _arguments action for a flag that takes a value.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		return ":file:_files -g \"" + strings.ReplaceAll(f.FileGlob, ",", " ") + "\""
	default:
		return ":value:_files"
	}
}

func generateZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef valentine\n\n")
	b.WriteString("_valentine() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s)\n", c.Name)
		b.WriteString("            _arguments")
		for _, f := range c.Flags {
			def := "[" + zshEscape(f.Desc) + "]" + zshAction(f)
			if f.Short != "" {
				fmt.Fprintf(b, " \\\n                '(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, def)
			} else {
				fmt.Fprintf(b, " \\\n                '--%s%s'", f.Long, def)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, " \\\n                '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(b, " \\\n                '1:file:_files -g \"%s\"'", c.FilePattern)
		}
		b.WriteString("\n            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_valentine \"$@\"\n")
}

// fishQuote makes s safe inside a single-quoted fish string.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer("\\", "\\\\", "'", "\\'").Replace(s) + "'"
}

func generateFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for valentine\n\n")
	b.WriteString("function __fish_valentine_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_valentine_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c valentine -f\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c valentine -n __fish_valentine_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_valentine_using_command %s'", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(b, "complete -c valentine -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(b, " -s %s", f.Short)
			}
			fmt.Fprintf(b, " -l %s", f.Long)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, " -xa %s", fishQuote(strings.Join(f.Values, " ")))
			case flagDir:
				b.WriteString(" -xa '(__fish_complete_directories)'")
			case flagFile, flagString:
				b.WriteString(" -rF")
			}
			fmt.Fprintf(b, " -d %s\n", fishQuote(f.Desc))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "complete -c valentine -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
		if c.FilePattern != "" {
			fmt.Fprintf(b, "complete -c valentine -n %s -F\n", cond)
		}
	}
}

// psQuote makes s safe inside a single-quoted PowerShell string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func generatePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# PowerShell completion for valentine\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName valentine -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $words = @{\n")
	for _, c := range cmds {
		words := append(flagWords(c.Flags), c.Args...)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = psQuote(w)
		}
		fmt.Fprintf(b, "        %s = @(%s)\n", psQuote(c.Name), strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $typed = $elements.Count\n")
	b.WriteString("    if ($wordToComplete -ne '') { $typed-- }\n\n")
	b.WriteString("    if ($typed -le 1) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    if ($words.ContainsKey($cmd)) {\n")
	b.WriteString("        $words[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if args[0] == "-h" || args[0] == "--help" {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: valentine completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(valentine completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(valentine completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    valentine completion fish > ~/.config/fish/completions/valentine.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    valentine completion powershell | Out-String | Invoke-Expression")
}
