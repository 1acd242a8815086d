package text

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n\s*`)
	lineBreak      = regexp.MustCompile(`\n\s*`)
)

// Normalize collapses runs of whitespace while keeping single line breaks
// and paragraph breaks.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\a", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	// \a marks breaks while fields are joined
	text = paragraphBreak.ReplaceAllString(text, "\a\a")
	text = lineBreak.ReplaceAllString(text, "\a")

	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "\a", "\n")

	return strings.TrimSpace(text)
}

// Format trims every line and collapses consecutive blank lines into one.
func Format(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string

	blank := true

	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			if blank {
				continue
			}

			blank = true
		} else {
			blank = false
		}

		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
