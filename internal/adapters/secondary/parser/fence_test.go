package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFenceTracker_Observe(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantInFence []bool
	}{
		{
			name:        "no fences",
			lines:       []string{"# Title", "plain text", "---"},
			wantInFence: []bool{false, false, false},
		},
		{
			name:        "backtick fence opens and closes",
			lines:       []string{"```go", "func main() {}", "```", "after"},
			wantInFence: []bool{true, true, false, false},
		},
		{
			name:        "tilde fence opens and closes",
			lines:       []string{"~~~", "content", "~~~", "after"},
			wantInFence: []bool{true, true, false, false},
		},
		{
			name:        "tilde does not close backtick fence",
			lines:       []string{"```", "~~~", "still inside", "```"},
			wantInFence: []bool{true, true, true, false},
		},
		{
			name:        "backtick does not close tilde fence",
			lines:       []string{"~~~", "```", "still inside", "~~~"},
			wantInFence: []bool{true, true, true, false},
		},
		{
			name:        "indented fence counts",
			lines:       []string{"  ```python", "code", "  ```"},
			wantInFence: []bool{true, true, false},
		},
		{
			name:        "unterminated fence stays open",
			lines:       []string{"```", "code", "more code"},
			wantInFence: []bool{true, true, true},
		},
		{
			name:        "info string on closing family is accepted",
			lines:       []string{"```mermaid", "graph TD", "```"},
			wantInFence: []bool{true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewFenceTracker()
			for i, line := range tt.lines {
				tracker.Observe(line)
				assert.Equal(t, tt.wantInFence[i], tracker.InFence(),
					"line %d: %q", i, line)
			}
		})
	}
}

func TestFenceTracker_Delimiter(t *testing.T) {
	tracker := NewFenceTracker()

	assert.Empty(t, tracker.Delimiter())

	tracker.Observe("```go")
	assert.Equal(t, "```", tracker.Delimiter())

	tracker.Observe("```")
	assert.Empty(t, tracker.Delimiter())

	tracker.Observe("~~~text")
	assert.Equal(t, "~~~", tracker.Delimiter())
}

func TestFenceTracker_ObserveReportsToggle(t *testing.T) {
	tracker := NewFenceTracker()

	assert.False(t, tracker.Observe("plain line"))
	assert.True(t, tracker.Observe("```"))
	assert.False(t, tracker.Observe("inside"))
	assert.True(t, tracker.Observe("```"))
}

func TestFenceTracker_Reset(t *testing.T) {
	tracker := NewFenceTracker()
	tracker.Observe("```")
	assert.True(t, tracker.InFence())

	tracker.Reset()
	assert.False(t, tracker.InFence())
	assert.Empty(t, tracker.Delimiter())
}

func TestFenceTracker_LongDocument(t *testing.T) {
	// Alternating fenced and plain regions across a larger document.
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("text\n```\ncode\n```\n")
	}

	tracker := NewFenceTracker()
	for _, line := range strings.Split(b.String(), "\n") {
		tracker.Observe(line)
	}

	assert.False(t, tracker.InFence())
}
