package main

import (
	"errors"

	docgrinder "github.com/alnah/go-docgrinder"
)

// Exit codes for the docgrinder CLI. Usage and bootstrap failures get distinct
// negative codes; on Unix they surface as 256+code.
const (
	ExitSuccess          = 0  // All documents converted
	ExitGeneral          = 1  // Conversion, engine, or any other error
	ExitWrongArgs        = -2 // Missing argument or invalid flag
	ExitNotDirectory     = -3 // Argument is not a directory
	ExitHighlightBlocked = -4 // Highlight target exists as a file
	ExitArchiveExtract   = -5 // Highlight archive extraction failed
	ExitArchiveNotFound  = -6 // Highlight archive could not be located
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, docgrinder.ErrWrongArgs):
		return ExitWrongArgs
	case errors.Is(err, docgrinder.ErrNotDirectory):
		return ExitNotDirectory
	case errors.Is(err, docgrinder.ErrHighlightBlocked):
		return ExitHighlightBlocked
	case errors.Is(err, docgrinder.ErrArchiveNotFound):
		return ExitArchiveNotFound
	case errors.Is(err, docgrinder.ErrArchiveExtract):
		return ExitArchiveExtract
	}
	return ExitGeneral
}
