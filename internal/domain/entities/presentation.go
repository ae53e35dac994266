package entities

import (
	"errors"
	"fmt"
	"strings"
)

// RepositoryInfo is passthrough metadata for resolving relative asset URLs
// inside repository-hosted documents. The parser copies it through without
// interpreting it.
type RepositoryInfo struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	Branch string `json:"branch,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Presentation is the result of segmenting a markdown document into slides.
// Update operations return a new Presentation graph; existing values are
// never mutated in place.
type Presentation struct {
	// Slides in document order. Never empty for non-blank OriginalContent.
	Slides []Slide `json:"slides"`

	// OriginalContent retains the full input verbatim for provenance and
	// diffing. Mutation regenerates it via serialization.
	OriginalContent string `json:"originalContent"`

	// Format is the delimiter convention the slides were produced under.
	Format PresentationFormat `json:"format"`

	// Frontmatter is the raw leading YAML block, including its delimiters,
	// re-emitted verbatim on serialization. Empty when the document has none.
	Frontmatter string `json:"frontmatter,omitempty"`

	// Metadata holds parsed frontmatter fields.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// RepositoryInfo is optional passthrough metadata.
	RepositoryInfo *RepositoryInfo `json:"repositoryInfo,omitempty"`

	// Source is the opaque provenance descriptor attached by the caller.
	Source *Source `json:"source,omitempty"`
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}

// SlideTitles returns the titles of all slides in document order.
func (p *Presentation) SlideTitles() []string {
	titles := make([]string, len(p.Slides))
	for i := range p.Slides {
		titles[i] = p.Slides[i].Title
	}
	return titles
}

// FindSlideByTitle returns the first slide with the given title.
func (p *Presentation) FindSlideByTitle(title string) (*Slide, bool) {
	for i := range p.Slides {
		if p.Slides[i].Title == title {
			return &p.Slides[i], true
		}
	}
	return nil, false
}

// FindSlideIndexByTitle returns the index of the first slide with the given
// title, or -1 when no slide matches.
func (p *Presentation) FindSlideIndexByTitle(title string) int {
	for i := range p.Slides {
		if p.Slides[i].Title == title {
			return i
		}
	}
	return -1
}

// GetSlideByIndex returns a slide by its index (0-based).
func (p *Presentation) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.Slides)-1)
	}
	return &p.Slides[index], nil
}

// Title returns the frontmatter title when present, otherwise the title of
// the first slide.
func (p *Presentation) Title() string {
	if t, ok := p.Metadata["title"].(string); ok && t != "" {
		return t
	}
	if len(p.Slides) > 0 {
		return p.Slides[0].Title
	}
	return ""
}

// Validate ensures the presentation's structural invariants hold.
func (p *Presentation) Validate() error {
	if err := p.Format.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(p.OriginalContent) != "" && len(p.Slides) == 0 {
		return errors.New("presentation with content must have at least one slide")
	}

	for i := range p.Slides {
		if p.Slides[i].Index != i {
			return fmt.Errorf("slide %d carries index %d", i, p.Slides[i].Index)
		}
		if err := p.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}

	return nil
}
