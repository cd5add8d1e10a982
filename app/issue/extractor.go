package issue

import (
	"strings"
	"unicode"

	"github.com/moritamori/bloggen/app/store"
)

// section heading aliases, the localized name takes precedence
// over the english one when both are present
const (
	headingTheme      = "テーマ"
	headingThemeEn    = "theme"
	headingAudience   = "対象読者"
	headingAudienceEn = "audience"
	headingTone       = "トーン"
	headingToneEn     = "tone"
	headingLength     = "文字数"
	headingLengthEn   = "length"
	headingExtra      = "追加指示"
	headingExtraEn    = "instructions"
)

// title prefixes stripped when the theme falls back to the issue title
var titlePrefixes = []string{"記事作成:", "記事作成：", "article:"}

const defaultTargetLength = 2000

// ParseRequest extracts a structured article request from an issue.
// It is a total function: every field has a safe default, arbitrary
// input never fails.
func ParseRequest(iss Issue) store.ArticleRequest {
	sections := splitSections(iss.Body)

	theme := strings.TrimSpace(section(sections, headingTheme, headingThemeEn))
	if theme == "" {
		theme = themeFromTitle(iss.Title)
	}

	return store.ArticleRequest{
		Theme:                  theme,
		TargetAudience:         strings.TrimSpace(section(sections, headingAudience, headingAudienceEn)),
		Tone:                   parseTone(section(sections, headingTone, headingToneEn)),
		TargetLength:           parseLength(section(sections, headingLength, headingLengthEn)),
		AdditionalInstructions: strings.TrimSpace(section(sections, headingExtra, headingExtraEn)),
		References:             extractURLs(iss.Body),
	}
}

// splitSections scans the body line by line, collecting text under
// "## heading" markers. Text before the first heading is discarded,
// the last open section is flushed at the end of input.
func splitSections(body string) map[string]string {
	sections := map[string]string{}

	name := ""
	var acc []string

	flush := func() {
		if name == "" {
			return
		}
		sections[name] = strings.Join(acc, "\n")
	}

	for _, line := range strings.Split(body, "\n") {
		if heading, ok := strings.CutPrefix(strings.TrimSpace(line), "## "); ok {
			flush()
			name = strings.TrimSpace(heading)
			acc = acc[:0]
			continue
		}
		if name != "" {
			acc = append(acc, line)
		}
	}
	flush()

	return sections
}

func section(sections map[string]string, localized, english string) string {
	if s, ok := sections[localized]; ok {
		return s
	}
	return sections[english]
}

func themeFromTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, prefix := range titlePrefixes {
		if rest, ok := strings.CutPrefix(title, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return title
}

// parseTone checks the tone section for keyword containment,
// business keywords win over technical ones.
func parseTone(s string) store.Tone {
	for _, kw := range []string{"ビジネス", "business"} {
		if strings.Contains(s, kw) {
			return store.ToneBusiness
		}
	}
	for _, kw := range []string{"技術", "technical"} {
		if strings.Contains(s, kw) {
			return store.ToneTechnical
		}
	}
	return store.ToneCasual
}

// parseLength picks the first run of decimal digits out of the section text.
func parseLength(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoi(s[start:i])
		}
	}
	if start >= 0 {
		return atoi(s[start:])
	}
	return defaultTargetLength
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// extractURLs collects http(s) links from the whole body in order of
// appearance, duplicates retained. A link runs until whitespace,
// a bracket or a parenthesis.
func extractURLs(body string) []string {
	var urls []string

	for i := 0; i < len(body); {
		rest := body[i:]

		switch {
		case strings.HasPrefix(rest, "http://"), strings.HasPrefix(rest, "https://"):
		default:
			i++
			continue
		}

		end := len(rest)
		for j, r := range rest {
			if unicode.IsSpace(r) || strings.ContainsRune("()[]", r) {
				end = j
				break
			}
		}

		urls = append(urls, rest[:end])
		i += end
	}

	return urls
}
