// Package workspace holds the state of one annotation session: the document
// being annotated, the label registry and the captured annotations.
//
// A Workspace is the only owner of that state; its methods are the only
// mutators. Each method is atomic with respect to the others so concurrent
// HTTP handlers observe one event at a time.
package workspace

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/render"
)

// SelectionProvider exposes the current selection of a text-editing surface.
type SelectionProvider interface {
	Selection() domain.Selection
}

// Workspace is the in-memory document, label list and annotation list.
// The zero value is not usable; construct with New.
type Workspace struct {
	mu          sync.Mutex
	log         *slog.Logger
	document    string
	labels      []domain.Label
	annotations []domain.Annotation
}

// New returns an empty Workspace that logs through log.
func New(log *slog.Logger) *Workspace {
	if log == nil {
		log = slog.Default()
	}
	return &Workspace{log: log}
}

// Document returns the current document text.
func (w *Workspace) Document() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.document
}

// SetDocument replaces the document text. Existing annotations keep their
// offsets and text snapshots even if they no longer match the new text.
func (w *Workspace) SetDocument(doc string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.document = doc
}

// AddLabel appends a label when both value and color are non-empty and
// reports whether it did. Duplicate values are accepted.
func (w *Workspace) AddLabel(value, color string) (domain.Label, bool) {
	if value == "" || color == "" {
		return domain.Label{}, false
	}
	label := domain.Label{Value: value, Color: color}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.labels = append(w.labels, label)
	return label, true
}

// RemoveLabel removes the label at index. An index outside the list returns
// an error wrapping domain.ErrNotFound and leaves the list unchanged.
// Annotations referencing the removed label are kept.
func (w *Workspace) RemoveLabel(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.labels) {
		return fmt.Errorf("workspace.RemoveLabel: index %d of %d labels: %w", index, len(w.labels), domain.ErrNotFound)
	}
	w.labels = append(w.labels[:index], w.labels[index+1:]...)
	return nil
}

// Labels returns a copy of the label list in insertion order.
func (w *Workspace) Labels() []domain.Label {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Label{}, w.labels...)
}

// LabelColor returns the color of the first label whose value equals value,
// or "" when there is none.
func (w *Workspace) LabelColor(value string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.labelColor(value)
}

func (w *Workspace) labelColor(value string) string {
	for _, l := range w.labels {
		if l.Value == value {
			return l.Color
		}
	}
	return ""
}

// Annotate reads the provider's current selection and appends an annotation
// carrying label. Offsets and text are stored as selected, untrimmed.
// A selection whose text is empty or whitespace-only is ignored; the returned
// bool reports whether an annotation was appended.
func (w *Workspace) Annotate(label string, p SelectionProvider) (domain.Annotation, bool) {
	sel := p.Selection()

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.annotate(label, sel)
}

// AnnotateRange selects [start, end) of the current document and annotates
// it with label, reading the document and appending under the same lock.
// Bounds outside the document return an error wrapping domain.ErrValidation.
func (w *Workspace) AnnotateRange(label string, start, end int) (domain.Annotation, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sel, err := NewDocumentSelection(w.document, start, end)
	if err != nil {
		return domain.Annotation{}, false, fmt.Errorf("workspace.AnnotateRange: %w", err)
	}
	a, ok := w.annotate(label, sel.Selection())
	return a, ok, nil
}

// annotate appends sel unless its text is blank. Callers hold w.mu.
func (w *Workspace) annotate(label string, sel domain.Selection) (domain.Annotation, bool) {
	if strings.TrimSpace(sel.Text) == "" {
		return domain.Annotation{}, false
	}
	a := domain.Annotation{Start: sel.Start, End: sel.End, Label: label, Text: sel.Text}

	w.annotations = append(w.annotations, a)
	w.log.Debug("annotation captured",
		"label", a.Label,
		"start", a.Start,
		"end", a.End,
		"count", len(w.annotations),
	)
	return a, true
}

// Annotations returns a copy of the annotation list in capture order.
// The result is never nil.
func (w *Workspace) Annotations() []domain.Annotation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Annotation{}, w.annotations...)
}

// Render returns the annotated markup for the current document, resolving
// label colors against the current label list.
func (w *Workspace) Render() template.HTML {
	w.mu.Lock()
	defer w.mu.Unlock()
	return render.Render(w.document, w.annotations, w.labelColor)
}

// Snapshot returns the export payload for the current state.
func (w *Workspace) Snapshot() domain.ExportPayload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.ExportPayload{
		Document:    w.document,
		Annotations: append([]domain.Annotation{}, w.annotations...),
	}
}
