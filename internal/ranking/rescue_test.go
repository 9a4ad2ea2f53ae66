package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescueFromText(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		held     []string
		raw      string
		expected []string
	}{
		{
			name:     "whole word mention",
			required: []string{"docker", "python"},
			held:     []string{"python"},
			raw:      "Shipped services with Docker and Python",
			expected: []string{"docker", "python"},
		},
		{
			name:     "underscore read as space",
			required: []string{"adobe_xd"},
			held:     nil,
			raw:      "Prototypes in Adobe XD",
			expected: []string{"adobe_xd"},
		},
		{
			name:     "trailing ing dropped",
			required: []string{"prototyping"},
			held:     nil,
			raw:      "Built a clickable prototyp",
			expected: []string{"prototyping"},
		},
		{
			name:     "trailing s dropped",
			required: []string{"mockups"},
			held:     nil,
			raw:      "Drew every mockup by hand",
			expected: []string{"mockups"},
		},
		{
			name:     "substring is not a mention",
			required: []string{"java"},
			held:     nil,
			raw:      "JavaScript only",
			expected: []string{},
		},
		{
			name:     "empty raw text",
			required: []string{"docker"},
			held:     []string{"go"},
			raw:      "",
			expected: []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RescueFromText(tt.required, tt.held, tt.raw))
		})
	}
}

func TestRescueFromText_OnlyAddsRequired(t *testing.T) {
	got := RescueFromText([]string{"aws"}, []string{"figma"}, "figma, sketch, aws, docker")
	assert.Equal(t, []string{"aws", "figma"}, got)
}
