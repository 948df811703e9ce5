package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Heading is a single Markdown heading with its generated anchor.
type Heading struct {
	// Level is the heading depth (1 for #, 2 for ##, ...).
	Level int

	// Text is the heading text with surrounding whitespace trimmed.
	Text string

	// Anchor is the GitHub-style link anchor for the heading.
	Anchor string
}

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.+)`)
	anchorSpaces = regexp.MustCompile(`\s+`)
	anchorStrip  = regexp.MustCompile(`[^a-z0-9\-]`)
)

// ExtractHeadings returns the document's headings up to maxDepth.
// Empty heading lines are skipped.
func ExtractHeadings(markdown string, maxDepth int) []Heading {
	if maxDepth < 1 || maxDepth > 6 {
		maxDepth = 3
	}

	var headings []Heading
	for _, line := range strings.Split(markdown, "\n") {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		if level > maxDepth {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		headings = append(headings, Heading{
			Level:  level,
			Text:   text,
			Anchor: GenerateAnchor(text),
		})
	}
	return headings
}

// GenerateAnchor produces a GitHub-style anchor from heading text:
// lowercase, spaces to hyphens, punctuation stripped.
func GenerateAnchor(text string) string {
	anchor := strings.ToLower(strings.TrimSpace(text))
	anchor = anchorSpaces.ReplaceAllString(anchor, "-")
	return anchorStrip.ReplaceAllString(anchor, "")
}

// FormatToC renders headings as a bulleted Markdown table of contents
// with intra-document links. Returns "" when there are no headings.
func FormatToC(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(headings))
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-1)
		lines = append(lines, fmt.Sprintf("%s- [%s](#%s)", indent, h.Text, h.Anchor))
	}
	return strings.Join(lines, "\n")
}
