package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions  = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags   = html.CommonFlags
	emailPolicy = bluemonday.NewPolicy()
)

func init() {
	// Tag set email clients render consistently.
	emailPolicy.AllowElements("p", "br", "h1", "h2", "h3", "b", "strong", "i", "em", "u", "s", "del", "ul", "ol", "li", "blockquote", "hr")
	emailPolicy.AllowAttrs("href").OnElements("a")
}

func render(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return markdown.Render(p.Parse(md), renderer)
}

// MarkdownToEmailHTML renders generated markdown into sanitized HTML suitable
// for newsletter delivery.
func MarkdownToEmailHTML(md []byte) string {
	return string(emailPolicy.SanitizeBytes(render(md)))
}

// MarkdownToPlainText renders generated markdown into plain text for channels
// that reject markup entirely.
func MarkdownToPlainText(md []byte) (string, error) {
	return html2text.FromString(string(render(md)), html2text.Options{
		OmitLinks: false,
	})
}
