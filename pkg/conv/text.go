package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
)

// MarkdownToText renders markdown for a plain terminal. Single newlines are
// kept as line breaks since answers are line oriented.
func MarkdownToText(md string) string {
	p := parser.NewWithExtensions(extensions | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.Render(p.Parse([]byte(md)), renderer)

	text, err := html2text.FromString(string(rendered), html2text.Options{OmitLinks: true})
	if err != nil {
		return md
	}
	return strings.TrimSpace(text)
}
