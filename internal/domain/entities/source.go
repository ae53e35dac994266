package entities

import "fmt"

// SourceType describes where a document came from. The parser only uses it
// to pick a default segmentation format; the descriptor itself is copied
// through untouched.
type SourceType string

const (
	// SourceFile is a markdown file authored locally.
	SourceFile SourceType = "file"

	// SourceDraft is unsaved in-memory content.
	SourceDraft SourceType = "draft"

	// SourceRemote is a document fetched from a remote origin.
	SourceRemote SourceType = "remote"

	// SourceIssue is the body of an issue on a code host.
	SourceIssue SourceType = "issue"

	// SourcePullRequest is the body of a pull request.
	SourcePullRequest SourceType = "pull_request"

	// SourceGist is a gist or pastebin-style snippet.
	SourceGist SourceType = "gist"
)

// DefaultFormat returns the segmentation format conventionally used for the
// source type. Issue-style sources use heading delimiters because their
// authors rarely write `---` rules; authored files use rule delimiters.
func (t SourceType) DefaultFormat() PresentationFormat {
	switch t {
	case SourceRemote, SourceIssue, SourcePullRequest, SourceGist:
		return FormatHeader
	default:
		return FormatHorizontalRule
	}
}

// Validate ensures the source type is one of the known values.
func (t SourceType) Validate() error {
	switch t {
	case SourceFile, SourceDraft, SourceRemote, SourceIssue, SourcePullRequest, SourceGist:
		return nil
	}
	return fmt.Errorf("unknown source type: %q", string(t))
}

// Source is an opaque provenance descriptor attached by the caller. Beyond
// choosing a default format from Type, the parser never interprets it.
type Source struct {
	// Type selects the default segmentation format.
	Type SourceType `json:"type"`

	// Content is the raw markdown to parse.
	Content string `json:"content"`

	// Format, when set, overrides the type's default.
	Format PresentationFormat `json:"format,omitempty"`

	// Path is the file path or remote locator, if any.
	Path string `json:"path,omitempty"`

	// ID identifies drafts that have no path yet.
	ID string `json:"id,omitempty"`

	// RepositoryInfo resolves relative asset URLs for repository-hosted
	// documents.
	RepositoryInfo *RepositoryInfo `json:"repositoryInfo,omitempty"`
}

// EffectiveFormat returns the explicit format if set, otherwise the
// type's default.
func (s *Source) EffectiveFormat() PresentationFormat {
	if s.Format != "" {
		return s.Format
	}
	return s.Type.DefaultFormat()
}
