package docgrinder

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperInches maps page sizes to width and height in inches.
var paperInches = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size   string  // letter, a4, legal
	Margin float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{Size: PageSizeLetter, Margin: DefaultMargin}
}

// Validate checks page settings. A nil receiver is valid and means defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperInches[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width, height and margin in inches, falling back
// to defaults for a nil receiver or zero fields.
func (p *PageSettings) dimensions() (width, height, margin float64) {
	size, margin := PageSizeLetter, DefaultMargin
	if p != nil {
		if p.Size != "" {
			size = strings.ToLower(p.Size)
		}
		if p.Margin != 0 {
			margin = p.Margin
		}
	}
	dims, ok := paperInches[size]
	if !ok {
		dims = paperInches[PageSizeLetter]
	}
	return dims[0], dims[1], margin
}
