package writer

import "strings"

// SplitTitleBody separates a leading title from the body of raw
// generated text. The first "# " heading wins; without one, the very
// first line becomes the title with leading hashes stripped. Empty
// input yields empty title and body.
func SplitTitleBody(raw string) (title, body string) {
	lines := strings.Split(raw, "\n")

	for i, line := range lines {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(rest), strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}

	title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(lines[0]), "#"))
	if len(lines) > 1 {
		body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}

	return title, body
}
