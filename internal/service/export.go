// Package service contains the business logic of the document annotator.
// Services validate inputs, enforce business rules, and orchestrate the
// workspace, the submission client and the repos. No SQL or HTTP lives here.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/annotator/internal/domain"
)

// Snapshotter provides the current export payload. *workspace.Workspace
// satisfies it.
type Snapshotter interface {
	Snapshot() domain.ExportPayload
}

// Submitter delivers an encoded payload to the collection endpoint.
// *submit.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, payload []byte) error
}

// ExportService encodes the workspace as JSON and submits every export to the
// collection endpoint in the background.
type ExportService struct {
	source    Snapshotter
	submitter Submitter
	log       *slog.Logger
	inflight  sync.WaitGroup
}

// NewExportService constructs an ExportService. A nil submitter disables
// remote submission; exports still return the encoded payload.
func NewExportService(source Snapshotter, submitter Submitter, log *slog.Logger) *ExportService {
	if log == nil {
		log = slog.Default()
	}
	return &ExportService{source: source, submitter: submitter, log: log}
}

// Export returns the JSON payload for the download and starts submitting the
// same bytes. It never waits for the submission: its outcome is reported only
// through the logger. Each call starts its own independent submission.
func (s *ExportService) Export(ctx context.Context) ([]byte, error) {
	payload, err := EncodePayload(s.source.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	s.submitAsync(ctx, payload)
	return payload, nil
}

// Wait blocks until every submission started by Export has finished.
func (s *ExportService) Wait() {
	s.inflight.Wait()
}

// submitAsync detaches from ctx's cancellation so the submission outlives the
// request that triggered it, while keeping its values for logging.
func (s *ExportService) submitAsync(ctx context.Context, payload []byte) {
	if s.submitter == nil {
		s.log.DebugContext(ctx, "annotation submission disabled")
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.submitter.Submit(ctx, payload); err != nil {
			s.log.ErrorContext(ctx, "error saving annotations", "error", err)
			return
		}
		s.log.InfoContext(ctx, "annotations saved successfully", "bytes", len(payload))
	}()
}

// EncodePayload marshals p without HTML-escaping so "<", ">" and "&" in the
// document survive verbatim. A nil annotation list is encoded as [].
func EncodePayload(p domain.ExportPayload) ([]byte, error) {
	if p.Annotations == nil {
		p.Annotations = []domain.Annotation{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
