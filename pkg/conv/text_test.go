package conv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "plain",
			input:    "לא בטוח שהבנתי",
			contains: []string{"לא בטוח שהבנתי"},
		},
		{
			name:        "bold_markers_removed",
			input:       "• סה\"כ: **3** לקוחות",
			contains:    []string{"3", "לקוחות"},
			notContains: []string{"**", "<strong>"},
		},
		{
			name:        "html_escaped",
			input:       "a < b & c",
			contains:    []string{"a < b & c"},
			notContains: []string{"&lt;", "&amp;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToText(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestMarkdownToText_KeepsLines(t *testing.T) {
	got := MarkdownToText("📊 סטטיסטיקות:\n\n• פעילים: 1\n• ממתינים: 2")

	lines := strings.Split(got, "\n")
	var bullets int
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "•") {
			bullets++
		}
	}
	assert.Equal(t, 2, bullets)
}
