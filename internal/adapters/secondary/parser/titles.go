package parser

import (
	"regexp"
	"strings"
)

// UntitledSlideTitle is the placeholder for slides with blank content.
const UntitledSlideTitle = "Untitled Slide"

var headingTextRegexp = regexp.MustCompile(`^#{1,6}\s+(.*)$`)

// ExtractSlideTitle derives a slide title from content: the text of the
// first heading line outside a fence, else the first non-blank line
// (truncated with an ellipsis when it exceeds the configured limit), else
// the untitled placeholder.
func (e *Engine) ExtractSlideTitle(content string) string {
	tracker := NewFenceTracker()
	firstLine := ""

	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		if tracker.Observe(line) || tracker.InFence() {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := headingTextRegexp.FindStringSubmatch(trimmed); m != nil {
			if title := strings.TrimSpace(m[1]); title != "" {
				return title
			}
			continue
		}

		if firstLine == "" {
			firstLine = trimmed
		}
	}

	if firstLine != "" {
		return truncateTitle(firstLine, e.titleLimit)
	}

	return UntitledSlideTitle
}

// truncateTitle shortens a derived title to limit runes plus an ellipsis.
func truncateTitle(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
