package entities

import "fmt"

// PresentationFormat selects the slide segmentation strategy for a document
type PresentationFormat string

const (
	// FormatFullContent yields exactly one slide with the whole document
	FormatFullContent PresentationFormat = "full_content"

	// FormatHeader splits slides on level 1 and level 2 headings
	FormatHeader PresentationFormat = "header"

	// FormatHorizontalRule splits slides on horizontal rule lines
	FormatHorizontalRule PresentationFormat = "horizontal_rule"
)

// Validate checks that the format is one of the known values
func (f PresentationFormat) Validate() error {
	switch f {
	case FormatFullContent, FormatHeader, FormatHorizontalRule:
		return nil
	default:
		return fmt.Errorf("unknown presentation format: %q", string(f))
	}
}

// String returns the wire representation of the format
func (f PresentationFormat) String() string {
	return string(f)
}
