// Package document contains the codec for persisted article documents
// and export renderers.
package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moritamori/bloggen/app/store"
)

const delimiter = "---"

// attribution footer appended to every persisted document
const footer = "---\n\n*この記事はAIによって自動生成されました*"

// Encode serializes an article into a document with a front-matter
// header block, the body under a level-1 heading, and an attribution
// footer.
func Encode(a store.Article) string {
	sb := &strings.Builder{}

	sb.WriteString(delimiter + "\n")
	fmt.Fprintf(sb, "title: %s\n", quote(a.Title))
	fmt.Fprintf(sb, "summary: %s\n", quote(a.Summary))
	fmt.Fprintf(sb, "tags: %s\n", encodeTags(a.Metadata.SuggestedTags))
	fmt.Fprintf(sb, "issueNumber: %d\n", a.Metadata.IssueNumber)
	fmt.Fprintf(sb, "generatedAt: %s\n", quote(a.GeneratedAt.Format(time.RFC3339)))
	fmt.Fprintf(sb, "wordCount: %d\n", a.WordCount)
	fmt.Fprintf(sb, "tone: %s\n", quote(a.Metadata.Tone))
	fmt.Fprintf(sb, "targetAudience: %s\n", quote(a.Metadata.TargetAudience))
	sb.WriteString(delimiter + "\n")

	sb.WriteString("\n# " + a.Title + "\n\n")
	sb.WriteString(a.Content)
	sb.WriteString("\n\n" + footer + "\n")

	return sb.String()
}

// Decode parses a persisted document back into an article. Any header
// field may be absent, each defaults independently. The word count is
// recomputed from the loaded body rather than trusted from the header.
// A document without a leading delimiter degrades to a body-only parse,
// see decodeLoose.
func Decode(doc string) store.Article {
	header, body, ok := splitHeader(doc)
	if !ok {
		return decodeLoose(doc)
	}

	a := store.Article{
		Metadata: store.Metadata{Tone: string(store.ToneCasual)},
	}

	for _, line := range strings.Split(header, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "title":
			a.Title = unquote(value)
		case "summary":
			a.Summary = unquote(value)
		case "tags":
			a.Metadata.SuggestedTags = decodeTags(value)
		case "issueNumber":
			if n, err := strconv.Atoi(value); err == nil {
				a.Metadata.IssueNumber = n
			}
		case "generatedAt":
			if ts, err := time.Parse(time.RFC3339, unquote(value)); err == nil {
				a.GeneratedAt = ts
			}
		case "tone":
			if tone := unquote(value); tone != "" {
				a.Metadata.Tone = tone
			}
		case "targetAudience":
			a.Metadata.TargetAudience = unquote(value)
		}
	}

	a.SetContent(stripBody(body))

	return a
}

// DecodeForRevision parses a document for the regeneration path.
// Unlike Decode it discards tags: the revision prompt does not carry
// them, the metadata completion reassigns tags on every regeneration.
func DecodeForRevision(doc string) store.Article {
	a := Decode(doc)
	a.Metadata.SuggestedTags = nil
	return a
}

// decodeLoose is the degraded parse for documents without a header
// block: the whole document is the body, the title is taken from the
// first line, everything else defaults.
func decodeLoose(doc string) store.Article {
	a := store.Article{
		Metadata: store.Metadata{Tone: string(store.ToneCasual)},
	}

	lines := strings.Split(doc, "\n")
	if len(lines) > 0 {
		a.Title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[0]), "#"))
	}

	body := ""
	if len(lines) > 1 {
		body = strings.Join(lines[1:], "\n")
	}
	a.SetContent(stripBody(body))

	return a
}

// splitHeader cuts the document into the header block between the
// first two delimiter lines and the remaining body.
func splitHeader(doc string) (header, body string, ok bool) {
	var headerLines []string

	state := 0 // 0 - before header, 1 - inside, 2 - after
	var bodyLines []string

	for _, line := range strings.Split(doc, "\n") {
		switch state {
		case 0:
			if strings.TrimSpace(line) == "" {
				continue
			}
			if strings.TrimSpace(line) != delimiter {
				return "", "", false
			}
			state = 1
		case 1:
			if strings.TrimSpace(line) == delimiter {
				state = 2
				continue
			}
			headerLines = append(headerLines, line)
		case 2:
			bodyLines = append(bodyLines, line)
		}
	}

	if state != 2 {
		return "", "", false
	}

	return strings.Join(headerLines, "\n"), strings.Join(bodyLines, "\n"), true
}

// stripBody removes the leading "# Title" heading and the trailing
// attribution footer from the body, if present.
func stripBody(body string) string {
	lines := strings.Split(body, "\n")

	// drop the heading line along with blank lines around it
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			lines = lines[i+1:]
		}
		break
	}

	// drop the footer: an italic attribution line preceded by a rule
	end := len(lines) - 1
	for end >= 0 && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end >= 0 {
		last := strings.TrimSpace(lines[end])
		if strings.HasPrefix(last, "*") && strings.HasSuffix(last, "*") && len(last) > 1 {
			prev := end - 1
			for prev >= 0 && strings.TrimSpace(lines[prev]) == "" {
				prev--
			}
			if prev >= 0 && strings.TrimSpace(lines[prev]) == delimiter {
				lines = lines[:prev]
			}
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var quoteEscaper = strings.NewReplacer(`"`, `\"`)

var quoteUnescaper = strings.NewReplacer(`\"`, `"`)

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return quoteUnescaper.Replace(s)
}

func encodeTags(tags []string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = quote(tag)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// decodeTags parses a bracketed list of quoted strings, tolerating
// escaped quotes inside the tags.
func decodeTags(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var tags []string

	inQuote, escaped := false, false
	sb := &strings.Builder{}
	for _, r := range s {
		switch {
		case escaped:
			if r != '"' {
				sb.WriteRune('\\')
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			if inQuote {
				tags = append(tags, sb.String())
				sb.Reset()
			}
			inQuote = !inQuote
		case inQuote:
			sb.WriteRune(r)
		}
	}

	return tags
}
