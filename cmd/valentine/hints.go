package main

import (
	"errors"

	"github.com/alnah/go-valentine"
	"github.com/alnah/go-valentine/internal/assets"
	"github.com/alnah/go-valentine/internal/config"
	"github.com/alnah/go-valentine/internal/hints"
	"github.com/alnah/go-valentine/internal/interaction"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, valentine.ErrBrowserConnect):
		inContainer, _ := isContainer(getenv)
		return hints.ForBrowserConnect(getenv, inContainer)
	case errors.Is(err, valentine.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, valentine.ErrPageMismatch):
		return hints.ForPageMismatch()
	case errors.Is(err, valentine.ErrTooFewImages):
		return hints.ForTooFewImages(interaction.MinImages)
	case errors.Is(err, valentine.ErrReadImages):
		return hints.ForImageDirectory("the image directory")
	case errors.Is(err, valentine.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		var nf *configNotFoundError
		if errors.As(err, &nf) {
			return hints.ForConfigNotFound(config.SearchPaths(nf.name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, valentine.ErrWriteOutput), errors.Is(err, ErrWriteScreenshot):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configNotFoundError remembers which config name was looked up.
type configNotFoundError struct {
	name string
	err  error
}

func (e *configNotFoundError) Error() string { return e.err.Error() }
func (e *configNotFoundError) Unwrap() error { return e.err }
