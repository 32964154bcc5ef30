package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-valentine/internal/interaction"
)

// Sentinel errors for page rendering.
var (
	ErrTemplateParse = errors.New("page template parsing failed")
	ErrPageRender    = errors.New("page template rendering failed")
)

// Page holds everything the page template needs, as plain values.
type Page struct {
	Lang        string
	Title       string
	Description string
	ThemeColor  string
	AcceptLabel string

	Style     string
	AuxScript string
	// NoteHTML is a trusted fragment produced by NoteRenderer.
	NoteHTML string

	// Images are data URLs in display order.
	Images          []string
	Table           interaction.Table
	ConfettiWarning string
}

// pageData is the template view with content-typed fields.
type pageData struct {
	Lang            string
	Title           string
	Description     string
	ThemeColor      string
	Style           template.CSS
	FirstImage      template.URL
	ImageAlt        string
	Question        string
	AcceptLabel     string
	DeclineLabel    string
	Note            template.HTML
	AuxScript       template.JS
	Images          []string
	Steps           []interaction.Step
	MaxDeclines     int
	AcceptImage     int
	FallbackImage   int
	BaseSize        interaction.Size
	Growth          interaction.Size
	Celebration     string
	FallbackAlt     string
	ConfettiWarning string
}

// PageRenderer renders the page template.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the page template.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the template for p.
func (r *PageRenderer) Render(ctx context.Context, p *Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newPageData(p)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

func newPageData(p *Page) pageData {
	t := p.Table
	first := ""
	if len(p.Images) > 0 {
		first = p.Images[0]
	}
	initialLabel := ""
	if len(t.DeclineLabels) > 0 {
		initialLabel = t.DeclineLabels[0]
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}

	// #nosec G203 -- style, script and note are sanitized or produced by goldmark in safe mode
	return pageData{
		Lang:            p.Lang,
		Title:           p.Title,
		Description:     p.Description,
		ThemeColor:      p.ThemeColor,
		Style:           template.CSS(sanitizeCSS(p.Style)),
		FirstImage:      template.URL(first),
		ImageAlt:        t.ImageAlt,
		Question:        t.Question,
		AcceptLabel:     p.AcceptLabel,
		DeclineLabel:    initialLabel,
		Note:            template.HTML(p.NoteHTML),
		AuxScript:       template.JS(sanitizeScript(p.AuxScript)),
		Images:          images,
		Steps:           t.Steps(),
		MaxDeclines:     t.MaxDeclines,
		AcceptImage:     t.AcceptImage,
		FallbackImage:   t.FallbackImage,
		BaseSize:        t.BaseSize,
		Growth:          t.Growth,
		Celebration:     t.Celebration,
		FallbackAlt:     t.FallbackAlt,
		ConfettiWarning: p.ConfettiWarning,
	}
}
