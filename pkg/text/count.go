package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Stats struct {
	Characters         int `json:"characters"`
	CharactersNoSpaces int `json:"charactersNoSpaces"`

	Words      int `json:"words"`
	Lines      int `json:"lines"`
	Paragraphs int `json:"paragraphs"`
}

// Count measures text in characters, not bytes. Every Han character counts as a word.
func Count(text string) Stats {
	stats := Stats{
		Characters: utf8.RuneCountInString(text),
	}

	if strings.TrimSpace(text) == "" {
		return stats
	}

	inWord := false

	for _, r := range text {
		if !unicode.IsSpace(r) {
			stats.CharactersNoSpaces++
		}

		switch {
		case unicode.Is(unicode.Han, r):
			stats.Words++
			inWord = false

		case unicode.IsSpace(r) || unicode.IsPunct(r):
			inWord = false

		default:
			if !inWord {
				stats.Words++
			}

			inWord = true
		}
	}

	normalized := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	stats.Lines = strings.Count(normalized, "\n") + 1

	for p := range strings.SplitSeq(paragraphBreak.ReplaceAllString(normalized, "\a"), "\a") {
		if strings.TrimSpace(p) != "" {
			stats.Paragraphs++
		}
	}

	return stats
}
