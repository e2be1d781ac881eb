// Package render turns a document and its annotations into line-segmented
// HTML markup. Each annotated span is wrapped in a colored <span> followed by
// a " [label]" caption.
//
// Offsets are rune offsets into the whole document, where the "\n" between two
// lines counts as one character. Annotations are applied per line in the order
// they appear in the annotation list, never sorted: spans that are out of
// textual order within a line, or that overlap each other, produce markup whose
// positions follow that order verbatim.
package render

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/annotator/internal/domain"
)

// ColorFunc resolves a label value to its CSS color. It returns "" for an
// unknown label.
type ColorFunc func(label string) string

// Render produces the annotated markup for document.
//
// Document text, captions and colors are HTML-escaped; only the wrapping
// <span> tags are emitted as trusted markup. Every line, including the last,
// is terminated by "\n" in the output.
func Render(document string, annotations []domain.Annotation, colorOf ColorFunc) template.HTML {
	if colorOf == nil {
		colorOf = func(string) string { return "" }
	}

	lines := strings.Split(document, "\n")

	var b strings.Builder
	position := 0

	for i, line := range lines {
		runes := []rune(line)
		forLine := annotationsForLine(lines, i, annotations)

		if len(forLine) == 0 {
			b.WriteString(template.HTMLEscapeString(line))
			b.WriteByte('\n')
			position += len(runes) + 1
			continue
		}

		linePosition := 0
		for _, a := range forLine {
			start := a.Start - position
			end := a.End - position

			b.WriteString(escapedSubstring(runes, linePosition, start))
			b.WriteString(`<span class="annotation" style="background-color:`)
			b.WriteString(template.HTMLEscapeString(colorOf(a.Label)))
			b.WriteString(`">`)
			b.WriteString(escapedSubstring(runes, start, end))
			b.WriteString(" [")
			b.WriteString(template.HTMLEscapeString(a.Label))
			b.WriteString("]</span>")

			linePosition = end
		}

		b.WriteString(escapedSubstring(runes, linePosition, len(runes)))
		b.WriteByte('\n')

		position += len(runes) + 1
	}

	return template.HTML(b.String())
}

// annotationsForLine returns, in list order, the annotations that touch line
// lineIndex: either endpoint falls inside [lineStart, lineEnd] or the
// annotation spans the whole line. Both bounds are inclusive, so an annotation
// ending exactly where a line starts still counts as touching it.
func annotationsForLine(lines []string, lineIndex int, annotations []domain.Annotation) []domain.Annotation {
	lineStart := lineStartPosition(lines, lineIndex)
	lineEnd := lineEndPosition(lines, lineIndex)

	var out []domain.Annotation
	for _, a := range annotations {
		if (a.Start >= lineStart && a.Start <= lineEnd) ||
			(a.End >= lineStart && a.End <= lineEnd) ||
			(a.Start <= lineStart && a.End >= lineEnd) {
			out = append(out, a)
		}
	}
	return out
}

// lineStartPosition sums the lengths of every line before lineIndex, plus one
// per consumed newline. It walks from the top on every call, which makes a
// full render quadratic in the number of lines.
func lineStartPosition(lines []string, lineIndex int) int {
	position := 0
	for i := 0; i < lineIndex; i++ {
		position += utf8.RuneCountInString(lines[i]) + 1
	}
	return position
}

func lineEndPosition(lines []string, lineIndex int) int {
	return lineStartPosition(lines, lineIndex) + utf8.RuneCountInString(lines[lineIndex])
}

// substring slices runes between from and to. Both indices are clamped to
// [0, len(runes)] and swapped when from > to, so line-relative offsets of a
// span that starts on an earlier line or ends on a later one select the part
// of the span that lies on this line.
func substring(runes []rune, from, to int) string {
	from = clamp(from, 0, len(runes))
	to = clamp(to, 0, len(runes))
	if from > to {
		from, to = to, from
	}
	return string(runes[from:to])
}

func escapedSubstring(runes []rune, from, to int) string {
	return template.HTMLEscapeString(substring(runes, from, to))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
