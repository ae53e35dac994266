package parser

import (
	"fmt"
	"strconv"

	"github.com/deckfold/deckfold/internal/domain/entities"
)

// ContentHash maps a string to a short, stable, printable token: a 32-bit
// rolling multiply-and-add hash, absolute-valued and base-36 encoded. It is
// deterministic across platforms and runs but not collision-free, which is
// why identifiers always combine it with a positional ordinal.
func ContentHash(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}

	n := int64(h)
	if n < 0 {
		n = -n
	}

	return strconv.FormatInt(n, 36)
}

// SlideID derives a content-addressed slide identifier from the slide's
// position and content. Stable under no-op edits, changed under content
// edits.
func SlideID(index int, content string) string {
	return fmt.Sprintf("slide-%d-%s", index, ContentHash(content))
}

// ChunkID derives a chunk identifier unique within a slide: the slide's id
// prefix, the chunk kind, its ordinal position, and the content hash.
func ChunkID(prefix string, kind entities.ChunkType, ordinal int, content string) string {
	return fmt.Sprintf("%s-%s-%d-%s", prefix, kind, ordinal, ContentHash(content))
}
