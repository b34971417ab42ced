package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
	"github.com/supportbrain/backend/internal/infrastructure/tokens"
	"github.com/supportbrain/backend/internal/infrastructure/vector"
	"github.com/supportbrain/backend/internal/infrastructure/webpage"
)

func faqPage() string {
	var b strings.Builder
	b.WriteString("<html><head><title>Returns FAQ</title></head><body><nav>Home</nav><main>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "<p>Returns are accepted within 30 days of delivery, rule %d.</p>", i)
	}
	b.WriteString("<p>Questions? Write to help@shop.example</p></main></body></html>")
	return b.String()
}

func newWebFixture(t *testing.T) (*WebService, *vector.MemoryStore, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/faq", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(faqPage()))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><script>var x;</script></body></html>"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	estimator, err := tokens.NewEstimator()
	require.NoError(t, err)

	cfg := testIngestConfig()
	index := vector.NewMemoryStore()
	writer := assist.NewIngestionWriter(&constantEmbedder{}, index, nil, cfg)
	service := NewWebService(webpage.NewDefaultFetcher(), pii.NewScrubber(), estimator, writer, cfg)
	return service, index, server
}

func TestWebService_IngestURL(t *testing.T) {
	service, index, server := newWebFixture(t)
	url := server.URL + "/faq"

	result := service.IngestURL(context.Background(), "3", url)

	require.Equal(t, WebStatusSuccess, result.Status, result.Error)
	assert.Equal(t, "Returns FAQ", result.Title)
	assert.Greater(t, result.Chunks, 1)
	assert.Equal(t, result.Chunks, index.Count("org_3"))

	records, err := index.Query(context.Background(), "org_3", []float32{1, 0, 0}, 100)
	require.NoError(t, err)
	ids := make(map[string]bool)
	for _, r := range records {
		ids[r.ID] = true
		chunk := knowledge.ChunkFromPayload(r.ID, r.Metadata)
		assert.Equal(t, knowledge.SourceWebPage, chunk.Metadata.SourceType)
		assert.Equal(t, url, chunk.Metadata.SourceURL)
		assert.Equal(t, "Returns FAQ", chunk.Metadata.Subject)
		assert.Equal(t, fmt.Sprintf("%s#%d", url, chunk.Metadata.ChunkIndex), chunk.ID)
		assert.NotContains(t, chunk.Text, "help@shop.example")
		assert.NotContains(t, chunk.Text, "Home")
	}
	assert.True(t, ids[url+"#0"])

	again := service.IngestURL(context.Background(), "3", url)
	assert.Equal(t, result.Chunks, again.Chunks)
	assert.Equal(t, result.Chunks, index.Count("org_3"), "re-ingest overwrites")
}

func TestWebService_IngestURLSkipsEmptyPage(t *testing.T) {
	service, index, server := newWebFixture(t)

	result := service.IngestURL(context.Background(), "3", server.URL+"/empty")

	assert.Equal(t, WebStatusSkipped, result.Status)
	assert.Zero(t, index.Count("org_3"))
}

func TestWebService_IngestBatch(t *testing.T) {
	service, _, server := newWebFixture(t)

	report := service.IngestBatch(context.Background(), "3", []string{
		server.URL + "/faq",
		server.URL + "/missing",
		server.URL + "/empty",
	})

	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, WebStatusSuccess, report.Results[0].Status)
	assert.Equal(t, WebStatusError, report.Results[1].Status)
	assert.NotEmpty(t, report.Results[1].Error)
	assert.Equal(t, WebStatusSkipped, report.Results[2].Status)
}

func TestWebService_IngestBatchCanceled(t *testing.T) {
	service, _, server := newWebFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := service.IngestBatch(ctx, "3", []string{server.URL + "/faq"})

	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Succeeded)
}
