package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment splits text into pieces of at most limit characters, preferring
// sentence boundaries, then pauses and spaces, and cutting hard only when
// a run has neither.
func Segment(text string, limit int) []string {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil
	}

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var segments []string

	var current strings.Builder
	var length int

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}

		current.Reset()
		length = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)

		if n > limit {
			flush()

			for _, part := range splitLong(sentence, limit) {
				if part = strings.TrimSpace(part); part != "" {
					segments = append(segments, part)
				}
			}

			continue
		}

		if length+n > limit {
			flush()
		}

		current.WriteString(sentence)
		length += n
	}

	flush()

	return segments
}

func splitSentences(text string) []string {
	var result []string
	var sb strings.Builder

	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		sb.WriteRune(runes[i])

		if !isTerminator(runes[i]) {
			continue
		}

		for i+1 < len(runes) && (isTerminator(runes[i+1]) || isCloser(runes[i+1])) {
			i++
			sb.WriteRune(runes[i])
		}

		result = append(result, sb.String())
		sb.Reset()
	}

	if sb.Len() > 0 {
		result = append(result, sb.String())
	}

	return result
}

func splitLong(s string, limit int) []string {
	runes := []rune(strings.TrimSpace(s))

	var parts []string

	for len(runes) > limit {
		cut := limit

		for i := limit; i > limit/2; i-- {
			if unicode.IsSpace(runes[i]) || isPause(runes[i-1]) {
				cut = i
				break
			}
		}

		parts = append(parts, string(runes[:cut]))
		runes = []rune(strings.TrimLeftFunc(string(runes[cut:]), unicode.IsSpace))
	}

	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	return parts
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', ';', '\n', '。', '！', '？', '；', '…':
		return true
	}

	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '」', '』', '）':
		return true
	}

	return false
}

func isPause(r rune) bool {
	switch r {
	case ',', ':', '，', '、', '：':
		return true
	}

	return false
}
