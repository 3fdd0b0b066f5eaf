package docgrinder

import (
	"errors"

	"github.com/alnah/go-docgrinder/internal/pipeline"
)

// Sentinel errors for argument validation.
var (
	ErrWrongArgs    = errors.New("expected exactly one document root directory")
	ErrNotDirectory = errors.New("not a directory")
)

// Sentinel errors for the highlight asset bootstrap.
var (
	ErrHighlightBlocked = errors.New("highlight target exists and is not a directory")
	ErrArchiveExtract   = errors.New("highlight archive extraction failed")
	ErrArchiveNotFound  = errors.New("highlight archive not found")
)

// Sentinel errors for conversion.
var (
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrInPlaceUnsupported = errors.New("in-place conversion is not supported")
	ErrDestinationMissing = errors.New("destination directory does not exist")
	ErrOutputCollision    = errors.New("documents render to the same output path")
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrInvalidSafeMode    = errors.New("invalid safe mode")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
)
