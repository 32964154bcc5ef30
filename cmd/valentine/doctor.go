package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-valentine/internal/config"
	"github.com/alnah/go-valentine/internal/fileutil"
	"github.com/alnah/go-valentine/internal/imageset"
	"github.com/alnah/go-valentine/internal/interaction"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string     `json:"status"` // "ready", "warnings", "errors"
	CheckedAt string     `json:"checked_at"`
	Chrome    chromeInfo `json:"chrome"`
	Env       envInfo    `json:"environment"`
	Inputs    inputInfo  `json:"inputs"`
	System    systemInfo `json:"system"`
	Warnings  []string   `json:"warnings,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// inputInfo describes the files a build would read.
type inputInfo struct {
	ImageDir      string `json:"image_dir"`
	ImageCount    int    `json:"image_count"`
	LeadImage     bool   `json:"lead_image"`
	Script        string `json:"script"`
	ScriptPresent bool   `json:"script_present"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printCommandUsage(env.Stdout, "doctor")
			return ExitSuccess
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status:    "ready",
		CheckedAt: env.Now().UTC().Format("2006-01-02T15:04:05Z"),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result, env.Getenv)
	checkInputs(result, env.Getenv)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation. Chrome is only needed by
// verify, so a missing browser is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; verify is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- browser path from launcher or ROD_BROWSER_BIN
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("VALENTINE_CONTAINER") == "1" {
		return true, "VALENTINE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkInputs inspects the image directory and confetti script a default
// build would read, after environment overrides.
func checkInputs(result *doctorResult, getenv func(string) string) {
	cfg := config.DefaultConfig()
	applyEnvConfig(loadEnvConfig(getenv), cfg)

	in := &result.Inputs
	in.ImageDir = cfg.Input.ImageDir
	in.Script = cfg.Input.Script
	in.ScriptPresent = fileutil.FileExists(cfg.Input.Script)

	switch {
	case fileutil.DirExists(cfg.Input.ImageDir):
		checkImages(result, cfg)
	case fileutil.FileExists(cfg.Input.ImageDir):
		result.Errors = append(result.Errors,
			fmt.Sprintf("Image directory %s is a file", cfg.Input.ImageDir))
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Image directory %s not found; the page will have no pictures", cfg.Input.ImageDir))
	}

	if !in.ScriptPresent {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Confetti script %s not found; the celebration will show a warning instead", cfg.Input.Script))
	}
}

// checkImages counts the images in an existing directory.
func checkImages(result *doctorResult, cfg *config.Config) {
	in := &result.Inputs
	loaded, err := imageset.Load(cfg.Input.ImageDir, cfg.Input.ImageExt)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}

	in.ImageCount = len(loaded.Images)
	_, in.LeadImage = loaded.Images[cfg.Input.LeadImage]
	switch {
	case in.ImageCount == 0:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Image directory %s has no %s files; the page will have no pictures",
				cfg.Input.ImageDir, cfg.Input.ImageExt))
	case in.ImageCount < interaction.MinImages:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Image directory %s has %d images, need at least %d",
				cfg.Input.ImageDir, in.ImageCount, interaction.MinImages))
	}
}

// checkSystem verifies the temp directory used by verify is writable.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "valentine-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// statusLine writes one indented "[LEVEL] text" line.
func statusLine(w io.Writer, level, format string, args ...any) {
	fmt.Fprintf(w, "  [%s] %s\n", level, fmt.Sprintf(format, args...))
}

// section writes a titled block followed by a blank line.
func section(w io.Writer, title string, body func()) {
	fmt.Fprintln(w, title)
	body()
	fmt.Fprintln(w)
}

// statusMessages maps doctorResult.Status to the closing line.
var statusMessages = map[string]string{
	"ready":    "Status: Ready to build",
	"warnings": "Status: Ready with warnings",
	"errors":   "Status: Not ready (see errors above)",
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "valentine doctor")
	fmt.Fprintln(w)

	section(w, "Chrome/Chromium", func() {
		if !r.Chrome.Found {
			statusLine(w, "WARN", "Not found")
			return
		}
		statusLine(w, "OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			statusLine(w, "OK", "Version: %s", r.Chrome.Version)
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		statusLine(w, "OK", "Sandbox: %s", sandbox)
	})

	section(w, "Environment", func() {
		statusLine(w, "OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
		if r.Env.Container {
			statusLine(w, "OK", "Container: detected (%s)", r.Env.ContainerHint)
		}
		if r.Env.CI {
			statusLine(w, "OK", "CI: detected")
		}
	})

	section(w, "Inputs", func() {
		statusLine(w, "OK", "Images: %d in %s", r.Inputs.ImageCount, r.Inputs.ImageDir)
		if r.Inputs.LeadImage {
			statusLine(w, "OK", "Lead image: present")
		}
		if r.Inputs.ScriptPresent {
			statusLine(w, "OK", "Confetti script: %s", r.Inputs.Script)
		} else {
			statusLine(w, "WARN", "Confetti script: missing (%s)", r.Inputs.Script)
		}
	})

	section(w, "System", func() {
		if r.System.TempWritable {
			statusLine(w, "OK", "Temp directory: writable")
		} else {
			statusLine(w, "ERROR", "Temp directory: not writable")
		}
	})

	if len(r.Warnings) > 0 {
		section(w, "Warnings:", func() {
			for _, msg := range r.Warnings {
				statusLine(w, "WARN", "%s", msg)
			}
		})
	}
	if len(r.Errors) > 0 {
		section(w, "Errors:", func() {
			for _, msg := range r.Errors {
				statusLine(w, "ERROR", "%s", msg)
			}
		})
	}

	fmt.Fprintln(w, statusMessages[r.Status])
}
