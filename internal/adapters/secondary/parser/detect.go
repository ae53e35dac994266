package parser

import (
	"strings"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// DetectFormat classifies a document by counting top-level headings outside
// fenced code blocks. More than one h1, or more than one h2, means the
// author is using headings as slide delimiters. HORIZONTAL_RULE is never
// auto-detected; it must be requested explicitly (issue-style sources use a
// different delimiter convention than authored files).
func (e *Engine) DetectFormat(content string) entities.PresentationFormat {
	if strings.TrimSpace(content) == "" {
		return entities.FormatFullContent
	}

	tracker := NewFenceTracker()
	var h1, h2 int

	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		if tracker.Observe(line) || tracker.InFence() {
			continue
		}

		switch headingLevel(line) {
		case 1:
			h1++
		case 2:
			h2++
		}
	}

	if h1 > 1 || h2 > 1 {
		return entities.FormatHeader
	}

	return entities.FormatFullContent
}

// headingLevel returns the ATX heading level of a line, or 0 when the line
// is not a heading. Headings must start at column 0 and the marker must be
// followed by whitespace or end of line.
func headingLevel(line string) int {
	if !strings.HasPrefix(line, "#") {
		return 0
	}

	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}

	if level > 6 {
		return 0
	}

	if level == len(line) {
		return level
	}

	if line[level] == ' ' || line[level] == '\t' {
		return level
	}

	return 0
}
