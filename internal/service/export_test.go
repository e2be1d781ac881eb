package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/service"
)

// ---- test doubles ----------------------------------------------------------

type stubSnapshotter domain.ExportPayload

func (s stubSnapshotter) Snapshot() domain.ExportPayload { return domain.ExportPayload(s) }

// mockSubmitter records every payload it receives. submit, when set, decides
// the outcome of each call.
type mockSubmitter struct {
	mu       sync.Mutex
	payloads [][]byte
	ctxErrs  []error
	submit   func(ctx context.Context, payload []byte) error
}

func (m *mockSubmitter) Submit(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	m.mu.Unlock()
	if m.submit != nil {
		return m.submit(ctx, payload)
	}
	return nil
}

func (m *mockSubmitter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// compile-time checks
var (
	_ service.Snapshotter = stubSnapshotter{}
	_ service.Submitter   = (*mockSubmitter)(nil)
)

func payloadFixture() stubSnapshotter {
	return stubSnapshotter{
		Document:    "hello\nworld",
		Annotations: []domain.Annotation{{Start: 0, End: 5, Label: "X", Text: "hello"}},
	}
}

const payloadJSON = `{"document":"hello\nworld","annotations":[{"start":0,"end":5,"label":"X","text":"hello"}]}`

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// ---- Export ----------------------------------------------------------------

func TestExportService_Export_ReturnsPayloadAndSubmits(t *testing.T) {
	sub := &mockSubmitter{}
	svc := service.NewExportService(payloadFixture(), sub, nil)

	got, err := svc.Export(context.Background())
	svc.Wait()

	require.NoError(t, err)
	assert.JSONEq(t, payloadJSON, string(got))
	require.Equal(t, 1, sub.calls())
	assert.Equal(t, got, sub.payloads[0], "download and submission carry the same bytes")
}

func TestExportService_Export_TwiceSubmitsTwice(t *testing.T) {
	sub := &mockSubmitter{}
	svc := service.NewExportService(payloadFixture(), sub, nil)

	first, err := svc.Export(context.Background())
	require.NoError(t, err)
	second, err := svc.Export(context.Background())
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, sub.calls(), "no de-duplication of concurrent exports")
}

func TestExportService_Export_FailureIsLoggedAndIsolated(t *testing.T) {
	var n int
	var mu sync.Mutex
	sub := &mockSubmitter{
		submit: func(context.Context, []byte) error {
			mu.Lock()
			defer mu.Unlock()
			n++
			if n == 1 {
				return errors.New("connection refused")
			}
			return nil
		},
	}
	log, buf := bufferLogger()
	svc := service.NewExportService(payloadFixture(), sub, log)

	first, err1 := svc.Export(context.Background())
	svc.Wait()
	second, err2 := svc.Export(context.Background())
	svc.Wait()

	require.NoError(t, err1, "a failing submission never fails the download")
	require.NoError(t, err2)
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.Contains(t, buf.String(), "error saving annotations")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "annotations saved successfully")
}

func TestExportService_Export_DoesNotWaitForSubmission(t *testing.T) {
	release := make(chan struct{})
	sub := &mockSubmitter{
		submit: func(context.Context, []byte) error {
			<-release
			return nil
		},
	}
	svc := service.NewExportService(payloadFixture(), sub, nil)

	done := make(chan struct{})
	go func() {
		_, _ = svc.Export(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Export blocked on the submission")
	}
	close(release)
	svc.Wait()
}

func TestExportService_Export_SurvivesRequestCancellation(t *testing.T) {
	sub := &mockSubmitter{}
	svc := service.NewExportService(payloadFixture(), sub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Export(ctx)
	svc.Wait()

	require.NoError(t, err)
	require.Equal(t, 1, sub.calls())
	assert.NoError(t, sub.ctxErrs[0], "submission must not inherit the request's cancellation")
}

func TestExportService_Export_NilSubmitter(t *testing.T) {
	log, buf := bufferLogger()
	svc := service.NewExportService(payloadFixture(), nil, log)

	got, err := svc.Export(context.Background())
	svc.Wait()

	require.NoError(t, err)
	assert.JSONEq(t, payloadJSON, string(got))
	assert.Contains(t, buf.String(), "annotation submission disabled")
}

// ---- EncodePayload ---------------------------------------------------------

func TestEncodePayload_KeepsMarkupCharacters(t *testing.T) {
	got, err := service.EncodePayload(domain.ExportPayload{Document: "a < b && c > d"})

	require.NoError(t, err)
	assert.Equal(t, `{"document":"a < b && c > d","annotations":[]}`, string(got))
}
