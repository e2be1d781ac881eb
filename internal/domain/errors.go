package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist: a stored
// submission with an unknown ID, or a label index outside the label list.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (e.g. selection
// bounds outside the document, a submitted annotation with an empty label).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
