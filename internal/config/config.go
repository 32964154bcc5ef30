package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-valentine/internal/fileutil"
	"github.com/alnah/go-valentine/internal/interaction"
	"github.com/alnah/go-valentine/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrLabelCount      = errors.New("wrong number of decline labels")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxExtensionLength   = 16
	MaxLangLength        = 35 // BCP 47
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxColorLength       = 20
	MaxTextLength        = 200 // question, celebration, alt texts
	MaxLabelLength       = 100
	MaxStyleNameLength   = 64
)

// DirName is the directory under the user config dir searched for configs.
const DirName = "go-valentine"

// Config holds all configuration for page assembly.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines where the page inputs are read from.
type InputConfig struct {
	ImageDir  string `yaml:"imageDir"`
	ImageExt  string `yaml:"imageExt"`
	LeadImage string `yaml:"leadImage"`
	Script    string `yaml:"script"` // Missing file = empty script block
	Note      string `yaml:"note"`   // Missing file = no note
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// PageConfig defines the texts shown on the page.
type PageConfig struct {
	Lang            string   `yaml:"lang"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	ThemeColor      string   `yaml:"themeColor"`
	Question        string   `yaml:"question"`
	Celebration     string   `yaml:"celebration"`
	AcceptLabel     string   `yaml:"acceptLabel"`
	DeclineLabels   []string `yaml:"declineLabels"` // Initial label followed by one per decline
	ImageAlt        string   `yaml:"imageAlt"`
	FallbackAlt     string   `yaml:"fallbackAlt"`
	ConfettiWarning string   `yaml:"confettiWarning"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style"`
}

// DefaultConfig returns the configuration of the original page.
func DefaultConfig() *Config {
	t := interaction.DefaultTable()
	return &Config{
		Input: InputConfig{
			ImageDir:  "images_b64",
			ImageExt:  ".b64",
			LeadImage: "giphy.gif.b64",
			Script:    "libs/confetti.min.js",
			Note:      "note.md",
		},
		Output: OutputConfig{Path: "valentine-standalone.html"},
		Page: PageConfig{
			Lang:            "de",
			Title:           "",
			Description:     "Ein liebevolles Valentinsgruß-Webpage — sag ihr, dass du sie magst!",
			ThemeColor:      "#ffdceb",
			Question:        t.Question,
			Celebration:     t.Celebration,
			AcceptLabel:     "Ja",
			DeclineLabels:   t.DeclineLabels,
			ImageAlt:        t.ImageAlt,
			FallbackAlt:     t.FallbackAlt,
			ConfettiWarning: "Confetti nicht verfügbar",
		},
		Assets: AssetsConfig{BasePath: "", Style: "default"},
	}
}

// Table returns the interaction table described by the page section,
// keeping the default geometry and image indices.
func (c *Config) Table() interaction.Table {
	t := interaction.DefaultTable()
	if c.Page.Question != "" {
		t.Question = c.Page.Question
	}
	if c.Page.Celebration != "" {
		t.Celebration = c.Page.Celebration
	}
	if c.Page.ImageAlt != "" {
		t.ImageAlt = c.Page.ImageAlt
	}
	if c.Page.FallbackAlt != "" {
		t.FallbackAlt = c.Page.FallbackAlt
	}
	if len(c.Page.DeclineLabels) > 0 {
		t.DeclineLabels = append([]string(nil), c.Page.DeclineLabels...)
	}
	return t
}

// Validate checks field lengths and the decline label count.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.imageDir", c.Input.ImageDir, MaxPathLength},
		{"input.imageExt", c.Input.ImageExt, MaxExtensionLength},
		{"input.leadImage", c.Input.LeadImage, MaxPathLength},
		{"input.script", c.Input.Script, MaxPathLength},
		{"input.note", c.Input.Note, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.description", c.Page.Description, MaxDescriptionLength},
		{"page.themeColor", c.Page.ThemeColor, MaxColorLength},
		{"page.question", c.Page.Question, MaxTextLength},
		{"page.celebration", c.Page.Celebration, MaxTextLength},
		{"page.acceptLabel", c.Page.AcceptLabel, MaxLabelLength},
		{"page.imageAlt", c.Page.ImageAlt, MaxTextLength},
		{"page.fallbackAlt", c.Page.FallbackAlt, MaxTextLength},
		{"page.confettiWarning", c.Page.ConfettiWarning, MaxTextLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxStyleNameLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if n := len(c.Page.DeclineLabels); n != 0 && n != interaction.DefaultMaxDeclines+1 {
		return fmt.Errorf("%w: page.declineLabels has %d, want %d", ErrLabelCount, n, interaction.DefaultMaxDeclines+1)
	}
	for i, label := range c.Page.DeclineLabels {
		if err := validateFieldLength(fmt.Sprintf("page.declineLabels[%d]", i), label, MaxLabelLength); err != nil {
			return err
		}
	}

	if c.Input.ImageExt != "" {
		if err := fileutil.ValidateExtension(c.Input.ImageExt); err != nil {
			return fmt.Errorf("input.imageExt: %w", err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, the format LoadConfig reads.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// SearchPaths returns the paths LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// current directory first, then ~/.config/go-valentine/.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
