package valentine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alnah/go-valentine/internal/assets"
	"github.com/alnah/go-valentine/internal/fileutil"
	"github.com/alnah/go-valentine/internal/imageset"
	"github.com/alnah/go-valentine/internal/interaction"
	"github.com/alnah/go-valentine/internal/logging"
	"github.com/alnah/go-valentine/internal/pipeline"
)

// Result is one generated page.
type Result struct {
	HTML []byte
	// Path is set by Write.
	Path string
	Size int
	// ImageCount is the number of images found, before padding.
	ImageCount int
	// Images are the data URLs embedded in the page, in display order.
	Images []string
	// Degraded is set when the image directory was missing or empty.
	Degraded bool
	// ScriptMissing is set when the confetti library was not found.
	ScriptMissing bool

	table interaction.Table
}

// Assembler builds the standalone page.
// Create with NewAssembler(), then call Build() or Write().
type Assembler struct {
	cfg      assemblerConfig
	logger   *slog.Logger
	table    interaction.Table
	style    string
	renderer *pipeline.PageRenderer
	notes    *pipeline.NoteRenderer
}

// NewAssembler creates an Assembler with default configuration.
// Returns error if the page texts are invalid or assets cannot be loaded.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		cfg:    defaultAssemblerConfig(),
		logger: logging.NewNop(),
		notes:  pipeline.NewNoteRenderer(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := fileutil.ValidateExtension(a.cfg.imageExt); err != nil {
		return nil, fmt.Errorf("image extension: %w", err)
	}

	table, err := a.cfg.page.table()
	if err != nil {
		return nil, err
	}
	a.table = table

	loader, err := assets.NewAssetResolver(a.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	a.logger.Debug("assets resolved", "custom", loader.HasCustomLoader(), "path", a.cfg.assetPath)

	a.style, err = resolveStyle(loader, a.cfg.style)
	if err != nil {
		return nil, err
	}

	tmpl, err := loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	a.renderer, err = pipeline.NewPageRenderer(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing page renderer: %w", err)
	}

	return a, nil
}

// resolveStyle returns CSS for a style name, or the content of a .css file
// when nameOrPath looks like a path. Empty means no style.
func resolveStyle(loader assets.AssetLoader, nameOrPath string) (string, error) {
	switch {
	case nameOrPath == "":
		return "", nil
	case fileutil.IsFilePath(nameOrPath) || strings.HasSuffix(nameOrPath, ".css"):
		data, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided style path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		return string(data), nil
	default:
		return loader.LoadStyle(nameOrPath)
	}
}

// minImages is the image count a non-empty directory must reach.
func (a *Assembler) minImages() int {
	return max(a.cfg.minImages, a.table.RequiredImages())
}

// Build loads the inputs and renders the page without writing it.
func (a *Assembler) Build(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seq, degraded, err := a.loadImages()
	if err != nil {
		return nil, err
	}

	script, scriptFound, err := fileutil.ReadOptional(a.cfg.scriptPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadScript, a.cfg.scriptPath, err)
	}
	if !scriptFound {
		a.logger.Warn("script asset not found, inlining empty script", "path", a.cfg.scriptPath)
	}

	note, err := a.loadNote(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	images := seq.DataURLs(a.table.RequiredImages())
	page := &pipeline.Page{
		Lang:            a.cfg.page.Lang,
		Title:           a.cfg.page.Title,
		Description:     a.cfg.page.Description,
		ThemeColor:      a.cfg.page.ThemeColor,
		AcceptLabel:     a.cfg.page.AcceptLabel,
		Style:           a.style,
		AuxScript:       script,
		NoteHTML:        note,
		Images:          images,
		Table:           a.table,
		ConfettiWarning: a.cfg.page.ConfettiWarning,
	}

	doc, err := a.renderer.Render(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	if err := pipeline.ValidateDocument(doc); err != nil {
		return nil, err
	}

	a.logger.Debug("page rendered",
		"images", len(seq),
		"slots", len(images),
		"bytes", len(doc),
		"degraded", degraded)

	return &Result{
		HTML:          doc,
		Size:          len(doc),
		ImageCount:    len(seq),
		Images:        images,
		Degraded:      degraded,
		ScriptMissing: !scriptFound,
		table:         a.table,
	}, nil
}

// Write builds the page and stores it at the output path, replacing any
// previous file.
func (a *Assembler) Write(ctx context.Context) (*Result, error) {
	result, err := a.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := fileutil.WriteFile(a.cfg.outputPath, result.HTML); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteOutput, a.cfg.outputPath, err)
	}
	result.Path = a.cfg.outputPath

	a.logger.Info("page written", "path", result.Path, "bytes", result.Size)
	return result, nil
}

// OutputPath returns the path Write stores the page at.
func (a *Assembler) OutputPath() string {
	return a.cfg.outputPath
}

// loadImages reads and orders the image set. A missing or empty directory
// yields an empty sequence and degraded=true.
func (a *Assembler) loadImages() (seq imageset.Sequence, degraded bool, err error) {
	loaded, err := imageset.Load(a.cfg.imageDir, a.cfg.imageExt)
	if err != nil {
		return nil, false, err
	}

	if loaded.Missing || len(loaded.Images) == 0 {
		a.logger.Warn("no images found, building placeholder page",
			"dir", a.cfg.imageDir,
			"missing", loaded.Missing)
		return imageset.Sequence{}, true, nil
	}

	if n, want := len(loaded.Images), a.minImages(); n < want {
		return nil, false, fmt.Errorf("%w: found %d in %s, need %d", ErrTooFewImages, n, a.cfg.imageDir, want)
	}

	seq = imageset.Order(loaded.Images, a.cfg.leadImage)
	if _, ok := loaded.Images[a.cfg.leadImage]; !ok {
		a.logger.Debug("lead image not present, using lexicographic order", "lead", a.cfg.leadImage)
	}
	a.logger.Debug("images ordered", "order", seq.Names())
	return seq, false, nil
}

// loadNote renders the optional markdown note.
func (a *Assembler) loadNote(ctx context.Context) (string, error) {
	if a.cfg.notePath == "" {
		return "", nil
	}

	md, found, err := fileutil.ReadOptional(a.cfg.notePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadNote, a.cfg.notePath, err)
	}
	if !found {
		return "", nil
	}

	return a.notes.Render(ctx, md)
}
