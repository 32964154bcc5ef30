package interaction

import (
	"errors"
	"fmt"
)

// Sentinel errors for table validation.
var (
	ErrLabelCount    = errors.New("decline label count must be MaxDeclines+1")
	ErrImageIndex    = errors.New("image index out of range")
	ErrInvalidGrowth = errors.New("invalid button growth")
)

// Size is the accept button's rendered size in pixels.
type Size struct {
	Height   int `json:"height"`
	Width    int `json:"width"`
	FontSize int `json:"fontSize"`
}

// Add returns s grown by d.
func (s Size) Add(d Size) Size {
	return Size{Height: s.Height + d.Height, Width: s.Width + d.Width, FontSize: s.FontSize + d.FontSize}
}

// Step is the effect of reaching a decline count.
type Step struct {
	Count int    `json:"count"`
	Image int    `json:"image"`
	Label string `json:"label"`
}

// Table holds every constant the page behaviour depends on.
type Table struct {
	MaxDeclines   int
	AcceptImage   int
	FallbackImage int
	BaseSize      Size
	Growth        Size
	// DeclineLabels[n] is the decline button text after n declines;
	// index 0 is the initial label.
	DeclineLabels []string
	Question      string
	Celebration   string
	ImageAlt      string
	FallbackAlt   string
}

// Defaults reproducing the original page.
const (
	DefaultMaxDeclines   = 5
	DefaultAcceptImage   = 6
	DefaultFallbackImage = 6
)

// MinImages is the number of image slots the default table dereferences.
const MinImages = DefaultAcceptImage + 1

// DefaultDeclineLabels are the escalating decline button labels.
var DefaultDeclineLabels = []string{
	"Nein",
	"Bist du dir sicher?",
	"Ganz sicher?",
	"Wirklich ganz ganz sicher?:(",
	"Immernoch nicht?",
	"Warum nicht :(",
}

// DefaultTable returns the table of the original Valentine page.
func DefaultTable() Table {
	labels := make([]string, len(DefaultDeclineLabels))
	copy(labels, DefaultDeclineLabels)

	return Table{
		MaxDeclines:   DefaultMaxDeclines,
		AcceptImage:   DefaultAcceptImage,
		FallbackImage: DefaultFallbackImage,
		BaseSize:      Size{Height: 48, Width: 80, FontSize: 20},
		Growth:        Size{Height: 20, Width: 20, FontSize: 6},
		DeclineLabels: labels,
		Question:      "Willst du meine Freundin sein?",
		Celebration:   "Yayyy!! :3",
		ImageAlt:      "Valentine image",
		FallbackAlt:   "Fallback-Bild",
	}
}

// Steps returns the explicit count -> (image, label) mapping for counts
// 0..MaxDeclines. Step n shows image n.
func (t Table) Steps() []Step {
	steps := make([]Step, t.MaxDeclines+1)
	for n := range steps {
		steps[n] = Step{Count: n, Image: n, Label: t.label(n)}
	}
	return steps
}

// SizeAfter returns the accept button size after n declines, capped at
// MaxDeclines.
func (t Table) SizeAfter(n int) Size {
	n = min(max(n, 0), t.MaxDeclines)
	size := t.BaseSize
	for range n {
		size = size.Add(t.Growth)
	}
	return size
}

// RequiredImages is the smallest image count for which every index the table
// references exists.
func (t Table) RequiredImages() int {
	return max(t.MaxDeclines, t.AcceptImage, t.FallbackImage) + 1
}

// Validate checks the table is internally consistent.
func (t Table) Validate() error {
	if t.MaxDeclines < 0 {
		return fmt.Errorf("%w: max declines %d", ErrImageIndex, t.MaxDeclines)
	}
	if len(t.DeclineLabels) != t.MaxDeclines+1 {
		return fmt.Errorf("%w: got %d, want %d", ErrLabelCount, len(t.DeclineLabels), t.MaxDeclines+1)
	}
	// Accept and fallback images sit at most one slot past the decline
	// sequence, so MaxDeclines+2 images always cover the table.
	last := t.MaxDeclines + 1
	if t.AcceptImage < 0 || t.FallbackImage < 0 || t.AcceptImage > last || t.FallbackImage > last {
		return fmt.Errorf("%w: accept %d, fallback %d, want 0..%d",
			ErrImageIndex, t.AcceptImage, t.FallbackImage, last)
	}
	if t.Growth.Height < 0 || t.Growth.Width < 0 || t.Growth.FontSize < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGrowth, t.Growth)
	}
	return nil
}

func (t Table) label(n int) string {
	if n < 0 || n >= len(t.DeclineLabels) {
		return ""
	}
	return t.DeclineLabels[n]
}
