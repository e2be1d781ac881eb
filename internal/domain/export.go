package domain

// ExportPayload is the document-plus-annotations snapshot written to
// annotations.json and POSTed to the collection endpoint.
// The JSON shape is the wire contract:
//
//	{"document": "...", "annotations": [{"start":0,"end":5,"label":"X","text":"hello"}]}
//
// Annotations is never nil when produced by the workspace so it always
// encodes as an array.
type ExportPayload struct {
	Document    string       `json:"document"`
	Annotations []Annotation `json:"annotations"`
}

// ExportFilename is the suggested filename of the client-side download.
const ExportFilename = "annotations.json"
