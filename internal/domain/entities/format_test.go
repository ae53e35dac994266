package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationFormat_Validate(t *testing.T) {
	tests := []struct {
		name    string
		format  PresentationFormat
		wantErr bool
	}{
		{"full content", FormatFullContent, false},
		{"header", FormatHeader, false},
		{"horizontal rule", FormatHorizontalRule, false},
		{"empty", PresentationFormat(""), true},
		{"unknown", PresentationFormat("vertical"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPresentationFormat_String(t *testing.T) {
	assert.Equal(t, "full_content", FormatFullContent.String())
	assert.Equal(t, "header", FormatHeader.String())
	assert.Equal(t, "horizontal_rule", FormatHorizontalRule.String())
}
