package text

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var markdownPatterns = []*regexp.Regexp{
	// headings
	regexp.MustCompile(`(?m)^#{1,6}\s+.+$`),

	// code fences
	regexp.MustCompile("(?m)^```|^~~~"),

	// lists
	regexp.MustCompile(`(?m)^[\s]*([-*+]|\d+\.)\s+.+$`),

	// links and images
	regexp.MustCompile(`!?\[([^\]]+)\]\(([^)]+)\)`),

	// blockquotes
	regexp.MustCompile(`(?m)^>\s+.+$`),

	// horizontal rules
	regexp.MustCompile(`(?m)^[\s]*(-{3,}|\*{3,}|_{3,})[\s]*$`),
}

// IsMarkdown reports whether text shows at least two distinct markdown features.
// A single stray '#' or '-' is common in plain prose.
func IsMarkdown(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	indicators := 0

	for _, p := range markdownPatterns {
		if p.MatchString(text) {
			indicators++
		}
	}

	return indicators >= 2
}

// StripMarkdown renders markdown to the plain text a listener would expect to hear.
// Code blocks, raw HTML, and link targets are dropped.
func StripMarkdown(source string) string {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(src))

	var sb strings.Builder

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak, *ast.AutoLink:
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))

				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}

		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		}

		if !entering && n.Type() == ast.TypeBlock {
			if n.Kind() == ast.KindParagraph || n.Kind() == ast.KindHeading {
				sb.WriteString("\n\n")
			} else {
				sb.WriteString("\n")
			}
		}

		return ast.WalkContinue, nil
	})

	return sb.String()
}

// Speakable prepares editor text for synthesis, stripping markdown when detected.
func Speakable(text string) string {
	if IsMarkdown(text) {
		text = StripMarkdown(text)
	}

	return Normalize(text)
}
