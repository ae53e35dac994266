package entities

import (
	"errors"
	"strings"
)

// SlideLocation records where a slide came from in the original document.
// Line offsets are zero-based and inclusive on both ends: a slide spanning
// the first three lines of a document has StartLine 0 and EndLine 2.
type SlideLocation struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Content is the exact substring of the slide, trimmed of leading and
	// trailing whitespace at the slide boundaries.
	Content string `json:"content"`

	// Type is the format under which the slide was produced.
	Type PresentationFormat `json:"type"`
}

// Slide is a contiguous, titled span of the source document treated as one
// presentation unit. Slides are replaced wholesale on edit, never mutated
// in place.
type Slide struct {
	// ID combines the slide's position ordinal with a hash of its content.
	// It is stable across re-serialization of unchanged content and changes
	// when the content changes.
	ID string `json:"id"`

	// Index is the slide position in the presentation (0-based).
	Index int `json:"index"`

	// Title is the first heading in the slide content, the first non-blank
	// line truncated to 50 characters, or "Untitled Slide".
	Title string `json:"title"`

	// Location carries the slide's content and provenance.
	Location SlideLocation `json:"location"`

	// Chunks is the ordered decomposition of Location.Content.
	Chunks []ContentChunk `json:"chunks"`

	// Notes contains speaker notes extracted from "Note:" lines. Extraction
	// is a view: the lines remain part of Location.Content so serialization
	// round-trips.
	Notes string `json:"notes,omitempty"`
}

// Content returns the slide's markdown content.
func (s *Slide) Content() string {
	return s.Location.Content
}

// IsBlank reports whether the slide carries no visible content.
func (s *Slide) IsBlank() bool {
	return strings.TrimSpace(s.Location.Content) == ""
}

// HasNotes reports whether the slide has speaker notes.
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// ContentWithoutNotes returns the slide content with "Note:" lines removed.
func (s *Slide) ContentWithoutNotes() string {
	lines := strings.Split(s.Location.Content, "\n")
	var kept []string

	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "Note:") {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// Validate ensures the slide's structural invariants hold. Blank slides are
// legal (a delimiter can be immediately followed by another delimiter), but
// offsets and identity must be consistent.
func (s *Slide) Validate() error {
	if s.ID == "" {
		return errors.New("slide id cannot be empty")
	}

	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}

	if s.Location.StartLine < 0 {
		return errors.New("slide start line must be non-negative")
	}

	if s.Location.EndLine < s.Location.StartLine {
		return errors.New("slide end line precedes start line")
	}

	if err := s.Location.Type.Validate(); err != nil {
		return err
	}

	for i := range s.Chunks {
		if err := s.Chunks[i].Validate(); err != nil {
			return errors.New("chunk " + s.Chunks[i].ID + ": " + err.Error())
		}
	}

	return nil
}
