package assets

import (
	"fmt"
	"strings"
)

// Style names used by the converter.
const (
	StyleWeb   = "web"
	StylePrint = "print"
)

// StyleLoader loads a CSS stylesheet by name (without the .css extension).
// Returns ErrStyleNotFound if the style doesn't exist and ErrInvalidAssetName
// if the name could address a file outside the styles directory.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// ValidateAssetName rejects empty names and names containing separators or
// dots, so a name can only ever address a file directly inside styles/.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
