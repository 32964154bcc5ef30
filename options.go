package valentine

import (
	"fmt"
	"log/slog"

	"github.com/alnah/go-valentine/internal/imageset"
	"github.com/alnah/go-valentine/internal/interaction"
)

// Default input and output locations, relative to the working directory.
const (
	DefaultImageDir   = "images_b64"
	DefaultImageExt   = imageset.DefaultExtension
	DefaultLeadImage  = imageset.DefaultLeadImage
	DefaultScriptPath = "libs/confetti.min.js"
	DefaultNotePath   = "note.md"
	DefaultOutputPath = "valentine-standalone.html"
	DefaultStyle      = "default"
)

// PageText holds the visible texts and head metadata of the page.
type PageText struct {
	Lang        string
	Title       string
	Description string
	ThemeColor  string

	Question    string
	Celebration string
	AcceptLabel string
	// DeclineLabels[0] is the initial label, DeclineLabels[n] the label after
	// n declines. Exactly six entries.
	DeclineLabels []string

	ImageAlt        string
	FallbackAlt     string
	ConfettiWarning string
}

// DefaultPageText returns the texts of the original German page.
func DefaultPageText() PageText {
	t := interaction.DefaultTable()
	return PageText{
		Lang:            "de",
		Description:     "Ein liebevolles Valentinsgruß-Webpage — sag ihr, dass du sie magst!",
		ThemeColor:      "#ffdceb",
		Question:        t.Question,
		Celebration:     t.Celebration,
		AcceptLabel:     "Ja",
		DeclineLabels:   t.DeclineLabels,
		ImageAlt:        t.ImageAlt,
		FallbackAlt:     t.FallbackAlt,
		ConfettiWarning: "Confetti nicht verfügbar",
	}
}

// table builds the interaction table for p.
func (p PageText) table() (interaction.Table, error) {
	t := interaction.DefaultTable()
	t.Question = p.Question
	t.Celebration = p.Celebration
	t.ImageAlt = p.ImageAlt
	t.FallbackAlt = p.FallbackAlt
	t.DeclineLabels = append([]string(nil), p.DeclineLabels...)
	if err := t.Validate(); err != nil {
		return interaction.Table{}, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}
	return t, nil
}

// Option configures an Assembler.
type Option func(*Assembler)

// assemblerConfig holds internal configuration for Assembler.
type assemblerConfig struct {
	imageDir   string
	imageExt   string
	leadImage  string
	scriptPath string
	notePath   string
	outputPath string
	assetPath  string
	style      string
	minImages  int
	page       PageText
}

func defaultAssemblerConfig() assemblerConfig {
	return assemblerConfig{
		imageDir:   DefaultImageDir,
		imageExt:   DefaultImageExt,
		leadImage:  DefaultLeadImage,
		scriptPath: DefaultScriptPath,
		notePath:   DefaultNotePath,
		outputPath: DefaultOutputPath,
		style:      DefaultStyle,
		page:       DefaultPageText(),
	}
}

// WithImageDir sets the directory holding the encoded images.
func WithImageDir(dir string) Option {
	return func(a *Assembler) {
		a.cfg.imageDir = dir
	}
}

// WithImageExt sets the encoded-image file extension (default ".b64").
func WithImageExt(ext string) Option {
	return func(a *Assembler) {
		a.cfg.imageExt = ext
	}
}

// WithLeadImage sets the file name of the image shown first.
func WithLeadImage(name string) Option {
	return func(a *Assembler) {
		a.cfg.leadImage = name
	}
}

// WithScriptPath sets the path of the inlined confetti library.
func WithScriptPath(path string) Option {
	return func(a *Assembler) {
		a.cfg.scriptPath = path
	}
}

// WithNotePath sets the optional markdown note. An empty path disables it.
func WithNotePath(path string) Option {
	return func(a *Assembler) {
		a.cfg.notePath = path
	}
}

// WithOutputPath sets where Write stores the page.
func WithOutputPath(path string) Option {
	return func(a *Assembler) {
		a.cfg.outputPath = path
	}
}

// WithPage replaces the page texts.
func WithPage(p PageText) Option {
	return func(a *Assembler) {
		a.cfg.page = p
	}
}

// WithAssetPath sets a directory of custom styles/ and templates/ that take
// precedence over the built-in assets.
func WithAssetPath(path string) Option {
	return func(a *Assembler) {
		a.cfg.assetPath = path
	}
}

// WithStyle selects a style by name, or by path to a .css file.
func WithStyle(nameOrPath string) Option {
	return func(a *Assembler) {
		a.cfg.style = nameOrPath
	}
}

// WithLogger sets the logger for build diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMinImages raises the number of images a non-empty image directory must
// hold. Values below what the page shows are ignored.
// Panics if n is negative.
func WithMinImages(n int) Option {
	if n < 0 {
		panic("valentine: WithMinImages count must not be negative")
	}
	return func(a *Assembler) {
		a.cfg.minImages = n
	}
}
