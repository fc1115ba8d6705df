package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldFinals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "all_finals", input: "ךםןףץ", want: "כמנפצ"},
		{name: "singular_matches_plural_stem", input: "ממתין", want: "ממתינ"},
		{name: "medial_untouched", input: "ממתינות", want: "ממתינות"},
		{name: "latin_untouched", input: "pending", want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldFinals(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase", input: "ACME Ltd", want: "acme ltd"},
		{name: "gershayim_removed", input: `בע"מ`, want: "בעמ"},
		{name: "hebrew_gershayim_removed", input: "בע״מ", want: "בעמ"},
		{name: "geresh_removed", input: "ג׳ון", want: "גון"},
		{name: "separators_to_space", input: "cohen-levi_group.io", want: "cohen levi group io"},
		{name: "whitespace_collapsed", input: "  יוסי    כהן \t", want: "יוסי כהן"},
		{name: "backtick_removed", input: "`dan`", want: "dan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestExtractEntityName(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "find_client", query: "מצא לקוח יוסי כהן", want: "יוסי כהן"},
		{name: "details_of", query: "פרטים של דנה לוי", want: "דנה לוי"},
		{name: "trailing_question_mark", query: "מי זה משה?", want: "זה משה"},
		{name: "stop_word_inside_name_kept", query: "מצא מהנדס", want: "מהנדס"},
		{name: "only_stop_words", query: "מצא לי לקוח", want: ""},
		{name: "english", query: "find client Acme", want: "acme"},
		{name: "bare_name", query: "יוסי", want: "יוסי"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEntityName(tt.query))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"יוסי", "כהן"}, Words("יוסי ה כהן"))
	assert.Empty(t, Words("א ב"))
}
