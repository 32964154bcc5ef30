package valentine

import (
	"errors"

	"github.com/alnah/go-valentine/internal/assets"
	"github.com/alnah/go-valentine/internal/imageset"
	"github.com/alnah/go-valentine/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadImages   = imageset.ErrReadImages
	ErrReadScript   = errors.New("failed to read script asset")
	ErrReadNote     = errors.New("failed to read note")
	ErrTooFewImages = errors.New("too few images")
	ErrInvalidPage  = errors.New("invalid page text")
	ErrWriteOutput  = errors.New("failed to write output")

	// Generated document errors.
	ErrInvalidDocument = pipeline.ErrInvalidDocument

	// Browser verification errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPageMismatch   = errors.New("page state does not match expected state")
	ErrScreenshot     = errors.New("screenshot capture failed")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
