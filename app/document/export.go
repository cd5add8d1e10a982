package document

import (
	"fmt"
	"strings"

	"github.com/moritamori/bloggen/app/store"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// FormatForNote renders the article as plain text for the note
// publishing platform: the title as a heading line, the body with
// code-fence language tags stripped. Pure function of the article.
func FormatForNote(a store.Article) string {
	sb := &strings.Builder{}

	sb.WriteString("# " + a.Title + "\n\n")
	sb.WriteString(stripFenceLanguages(a.Content))
	sb.WriteString("\n")

	return sb.String()
}

// stripFenceLanguages turns "```lang" fence openers into bare "```",
// note does not understand language tags.
func stripFenceLanguages(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") && len(trimmed) > 3 {
			lines[i] = "```"
		}
	}
	return strings.Join(lines, "\n")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML renders the article body to HTML with the title as an
// <h1> heading.
func RenderHTML(a store.Article) (string, error) {
	src := "# " + a.Title + "\n\n" + a.Content + "\n"

	sb := &strings.Builder{}
	if err := markdown.Convert([]byte(src), sb); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	return sb.String(), nil
}
