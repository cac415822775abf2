// Package textflow normalizes report text and breaks it into lines that fit a
// width constraint. Widths come from a Measurer so layout code and tests can
// supply their own metrics.
package textflow

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/the-evaluation-company/eval-worker/typeface"
)

// Measurer reports the rendered width of text in points.
type Measurer interface {
	Measure(text string, style typeface.Style, size float64) float64
}

// Compound words like "Course-by-Course" must never break at their hyphens.
var hyphenPattern = regexp.MustCompile(`\b\w+(?:-\w+)+\b`)

const (
	// A line narrower than half the limit is merged into its predecessor
	// when the combined line stays within the overflow allowance.
	shortLineRatio     = 0.5
	mergeOverflowRatio = 1.1
)

// Normalize prepares text for drawing: NFKC normalization, dotted capital I
// folded to "I", control characters replaced by spaces, characters outside
// printable ASCII and the Latin extension blocks dropped, and whitespace
// collapsed to single spaces.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := norm.NFKC.String(text)
	s = strings.ReplaceAll(s, "İ", "I")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r <= 0x1F || (r >= 0x7F && r <= 0x9F):
			b.WriteRune(' ')
		case printable(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func printable(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7E: // printable ASCII
	case r >= 0x00A0 && r <= 0x024F: // Latin-1 supplement, Latin extended A/B
	case r >= 0x1E00 && r <= 0x1EFF: // Latin extended additional
	case r >= 0x2C60 && r <= 0x2C7F: // Latin extended C
	case r >= 0xA720 && r <= 0xA7FF: // Latin extended D
	default:
		return false
	}
	return true
}

// Wrap normalizes text and greedily fills lines up to maxWidth. Hyphenated
// compounds are kept intact, a word wider than the limit is placed on its own
// line anyway, and a trailing short line is merged back into its predecessor
// when the merge stays within the overflow allowance.
func Wrap(m Measurer, text string, style typeface.Style, size, maxWidth float64) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{""}
	}
	if m.Measure(normalized, style, size) <= maxWidth {
		return []string{normalized}
	}

	var lines []string
	current := ""
	for _, word := range splitProtected(normalized) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if m.Measure(test, style, size) <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		// An oversized word still occupies a line of its own.
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return mergeShortLines(m, lines, style, size, maxWidth)
}

// WrapWithPrefix seeds the first line with prefix and flows the remaining
// words onto subsequent lines. Unlike Wrap, widths accumulate per word and no
// merge pass runs afterwards.
func WrapWithPrefix(m Measurer, text, prefix string, style typeface.Style, size, maxWidth float64) []string {
	words := strings.Split(Normalize(text), " ")
	spaceWidth := m.Measure(" ", style, size)

	current := prefix
	currentWidth := m.Measure(prefix, style, size)
	next := 0
	for ; next < len(words); next++ {
		testWidth := currentWidth + m.Measure(words[next], style, size)
		if current != prefix {
			testWidth += spaceWidth
		}
		if testWidth > maxWidth {
			break
		}
		if current == prefix {
			current += words[next]
		} else {
			current += " " + words[next]
		}
		currentWidth = testWidth
	}
	lines := []string{current}

	current, currentWidth = "", 0
	for ; next < len(words); next++ {
		word := words[next]
		wordWidth := m.Measure(word, style, size)
		testWidth := wordWidth
		if current != "" {
			testWidth += currentWidth + spaceWidth
		}
		if testWidth <= maxWidth {
			if current == "" {
				current = word
			} else {
				current += " " + word
			}
			currentWidth = testWidth
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
		currentWidth = wordWidth
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitProtected splits on spaces while keeping hyphenated compounds as
// single words, via temporary placeholders that contain no spaces.
func splitProtected(text string) []string {
	compounds := hyphenPattern.FindAllString(text, -1)
	protected := text
	placeholders := make([]string, len(compounds))
	for i, word := range compounds {
		placeholders[i] = fmt.Sprintf("__HYPHEN_%d__", i)
		protected = strings.Replace(protected, word, placeholders[i], 1)
	}

	words := strings.Split(protected, " ")
	for i, ph := range placeholders {
		for j, word := range words {
			if strings.Contains(word, ph) {
				words[j] = strings.Replace(word, ph, compounds[i], 1)
				break
			}
		}
	}
	return words
}

func mergeShortLines(m Measurer, lines []string, style typeface.Style, size, maxWidth float64) []string {
	if len(lines) <= 1 {
		return lines
	}
	merged := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(merged) > 0 && m.Measure(line, style, size) < maxWidth*shortLineRatio {
			candidate := merged[len(merged)-1] + " " + line
			if m.Measure(candidate, style, size) <= maxWidth*mergeOverflowRatio {
				merged[len(merged)-1] = candidate
				continue
			}
		}
		merged = append(merged, line)
	}
	return merged
}
