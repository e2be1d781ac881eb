package workspace

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkordes/annotator/internal/domain"
)

// DocumentSelection is a SelectionProvider over a document string and a pair
// of rune offsets, as reported by a browser textarea's selectionStart and
// selectionEnd.
type DocumentSelection struct {
	Document string
	Start    int
	End      int
}

// NewDocumentSelection validates that the bounds could have come from a text
// surface showing doc: 0 <= start <= end <= runes in doc. Invalid bounds
// return an error wrapping domain.ErrValidation.
func NewDocumentSelection(doc string, start, end int) (DocumentSelection, error) {
	n := utf8.RuneCountInString(doc)
	if start < 0 || end < start || end > n {
		return DocumentSelection{}, fmt.Errorf("%w: selection [%d, %d) outside document of length %d", domain.ErrValidation, start, end, n)
	}
	return DocumentSelection{Document: doc, Start: start, End: end}, nil
}

// Selection implements SelectionProvider.
func (s DocumentSelection) Selection() domain.Selection {
	runes := []rune(s.Document)
	start := min(max(s.Start, 0), len(runes))
	end := min(max(s.End, start), len(runes))
	return domain.Selection{Start: s.Start, End: s.End, Text: string(runes[start:end])}
}
