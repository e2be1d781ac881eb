package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is an ExportPayload received by the collection endpoint and
// persisted. Digest is the hex BLAKE3 hash of the raw request body; two
// identical submissions share a digest but are stored as separate rows.
type Submission struct {
	ID        uuid.UUID
	Payload   ExportPayload
	Digest    string
	CreatedAt time.Time
}
