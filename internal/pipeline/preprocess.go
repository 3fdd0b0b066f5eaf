package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they pass
// through goldmark untouched; markPlaceholders turns them into <mark> after.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR        = regexp.MustCompile(`\r\n?`)
	highlightSyntax = regexp.MustCompile(`==([^=\n]+)==`)
	fenceLine       = regexp.MustCompile("^\\s*(```|~~~)")
)

// preprocessMarkdown normalizes line endings and drops a UTF-8 BOM. Outside
// code fences it also compresses blank-line runs and converts ==text== to
// placeholders.
func preprocessMarkdown(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = crlfOrCR.ReplaceAllString(content, "\n")

	lines := strings.Split(content, "\n")
	out := lines[:0]
	inFence := false
	blanks := 0
	for _, line := range lines {
		if fenceLine.MatchString(line) {
			inFence = !inFence
			blanks = 0
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, highlightSyntax.ReplaceAllString(line, markStart+"$1"+markEnd))
	}
	return strings.Join(out, "\n")
}

// markPlaceholders converts placeholder pairs to <mark> elements.
func markPlaceholders(content string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(content)
}
