package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter holds a document's leading YAML block: the raw text including
// delimiters, the parsed fields, and how many source lines it consumed
// (delimiters included) so slide offsets can be shifted back into original
// document coordinates.
type frontmatter struct {
	raw       string
	fields    map[string]interface{}
	lineCount int
}

// extractFrontmatter strips a leading `---` YAML block before format
// detection and segmentation, so its delimiters are never mistaken for
// horizontal-rule slide delimiters. Malformed or unterminated frontmatter is
// left in place and the whole document is returned as the body.
func extractFrontmatter(content string) (frontmatter, string) {
	if !strings.HasPrefix(content, "---\n") {
		return frontmatter{}, content
	}

	lines := strings.Split(content, "\n")
	endIndex := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endIndex = i
			break
		}
	}

	if endIndex == -1 {
		return frontmatter{}, content
	}

	block := strings.Join(lines[1:endIndex], "\n")

	fields := make(map[string]interface{})
	if strings.TrimSpace(block) != "" {
		if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
			warnOnce("frontmatter-parse", "ignoring malformed frontmatter: %v", err)
			return frontmatter{}, content
		}
	}

	return frontmatter{
		raw:       strings.Join(lines[:endIndex+1], "\n"),
		fields:    fields,
		lineCount: endIndex + 1,
	}, strings.Join(lines[endIndex+1:], "\n")
}
