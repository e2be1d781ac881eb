package domain

// Annotation is a labeled character span over the document.
// Start and End are rune offsets into the whole document, where each "\n"
// counts as one character. Text is a snapshot of the selected substring taken
// when the annotation was captured; it is not updated if the document changes.
//
// Label references a Label.Value by convention only.
type Annotation struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Selection is the current text selection of an editing surface: the rune
// offsets of its boundaries and the substring between them.
type Selection struct {
	Start int
	End   int
	Text  string
}
