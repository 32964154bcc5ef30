// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"
)

// ciVars are set by common CI services.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect returns hints for browser connection errors, reading the
// environment through getenv. inContainer reports a detected container.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var hints []string

	inCI := false
	for _, v := range ciVars {
		if getenv(v) != "" {
			inCI = true
			break
		}
	}

	if (inCI || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "run 'valentine doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow page loads.
func ForTimeout() string {
	return format("for pages with many large images, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-valentine/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the user config path, if one was searched
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-valentine") {
			hint += " or create " + p
			break
		}
	}

	return format(hint + "; run 'valentine init' to write the defaults")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTooFewImages returns hints when the image directory holds fewer images
// than the page needs.
func ForTooFewImages(want int) string {
	return format(fmt.Sprintf("the page shows %d images; add more or empty the directory for a placeholder page", want))
}

// ForImageDirectory returns hints for unreadable image directories.
func ForImageDirectory(dir string) string {
	return format("check that " + dir + " is a readable directory of base64 files, or pass --images")
}

// ForPageMismatch returns hints when the browser state differs from the
// expected state.
func ForPageMismatch() string {
	return format("rebuild the page with 'valentine build' and check custom templates keep the element IDs")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
