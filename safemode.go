package docgrinder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-docgrinder/internal/pipeline"
)

// SafeMode is the document trust level. Values match the levels AsciiDoc
// processors expose as the safe-mode-level attribute.
type SafeMode int

const (
	SafeModeUnsafe SafeMode = 0
	SafeModeSafe   SafeMode = 1
	SafeModeServer SafeMode = 10
	SafeModeSecure SafeMode = 20
)

// ParseSafeMode parses a safe mode name case-insensitively. An empty string
// means SafeModeUnsafe.
func ParseSafeMode(s string) (SafeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unsafe":
		return SafeModeUnsafe, nil
	case "safe":
		return SafeModeSafe, nil
	case "server":
		return SafeModeServer, nil
	case "secure":
		return SafeModeSecure, nil
	}
	return SafeModeUnsafe, fmt.Errorf("%w: %q (must be unsafe, safe, server, or secure)", ErrInvalidSafeMode, s)
}

func (m SafeMode) String() string {
	switch m {
	case SafeModeUnsafe:
		return "unsafe"
	case SafeModeSafe:
		return "safe"
	case SafeModeServer:
		return "server"
	case SafeModeSecure:
		return "secure"
	}
	return "SafeMode(" + strconv.Itoa(int(m)) + ")"
}

// Contained reports whether references outside the document root are dropped.
func (m SafeMode) Contained() bool {
	return m != SafeModeUnsafe
}

// attributes returns the safe-mode document attributes.
func (m SafeMode) attributes() map[string]string {
	return map[string]string{
		pipeline.AttrSafeModeName:  m.String(),
		pipeline.AttrSafeModeLevel: strconv.Itoa(int(m)),
	}
}
