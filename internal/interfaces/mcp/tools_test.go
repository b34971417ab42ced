package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/domain/knowledge"
)

type fakeAssistant struct {
	result    knowledge.SynthesisResult
	err       error
	matches   []knowledge.Match
	lastReq   assist.SuggestRequest
	lastLimit int
}

func (f *fakeAssistant) Suggest(_ context.Context, req assist.SuggestRequest) (knowledge.SynthesisResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakeAssistant) Search(_ context.Context, _ string, _ string, k int) ([]knowledge.Match, error) {
	f.lastLimit = k
	return f.matches, f.err
}

type fakeWeb struct {
	result ingest.WebResult
}

func (f *fakeWeb) IngestURL(_ context.Context, _ string, url string) ingest.WebResult {
	res := f.result
	res.URL = url
	return res
}

func TestSuggestReplyTool(t *testing.T) {
	assistant := &fakeAssistant{result: knowledge.SynthesisResult{Draft: "Hello", Confidence: 0.7}}
	server := NewServer(assistant, &fakeWeb{})

	_, out, err := server.suggestReplyTool(context.Background(), nil, SuggestReplyInput{OrgID: "1", TicketBody: "refund?"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", out.Draft)
	assert.Equal(t, 0.7, out.Confidence)
	assert.NotNil(t, out.SourceReferences)
	assert.Equal(t, "refund?", assistant.lastReq.TicketBody)

	_, _, err = server.suggestReplyTool(context.Background(), nil, SuggestReplyInput{})
	assert.Error(t, err)

	assistant.err = knowledge.ErrEmptyInput
	_, _, err = server.suggestReplyTool(context.Background(), nil, SuggestReplyInput{OrgID: "1"})
	assert.ErrorIs(t, err, knowledge.ErrEmptyInput)
}

func TestSearchKnowledgeTool(t *testing.T) {
	assistant := &fakeAssistant{matches: []knowledge.Match{{
		Chunk: knowledge.Chunk{ID: "42", Text: "refund issued", Metadata: knowledge.Metadata{
			SourceType: knowledge.SourceTicket, SourceID: "42", Subject: "Refund",
		}},
		Score: 0.82,
	}}}
	server := NewServer(assistant, &fakeWeb{})

	_, out, err := server.searchKnowledgeTool(context.Background(), nil, SearchKnowledgeInput{OrgID: "1", Query: "refund", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 10, assistant.lastLimit)
	require.Equal(t, 1, out.TotalCount)
	assert.Equal(t, "Ticket #42", out.Results[0].Reference)
	assert.Equal(t, "Refund", out.Results[0].Subject)

	_, _, err = server.searchKnowledgeTool(context.Background(), nil, SearchKnowledgeInput{OrgID: "1"})
	assert.Error(t, err)

	_, out, err = server.searchKnowledgeTool(context.Background(), nil, SearchKnowledgeInput{OrgID: "1", Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, 3, assistant.lastLimit)
	assert.Equal(t, 1, out.TotalCount)
}

func TestIngestWebPageTool(t *testing.T) {
	web := &fakeWeb{result: ingest.WebResult{Status: ingest.WebStatusSuccess, Chunks: 2}}
	server := NewServer(&fakeAssistant{}, web)

	_, out, err := server.ingestWebPageTool(context.Background(), nil, IngestWebPageInput{OrgID: "1", URL: "https://shop.example/faq"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Chunks)

	web.result = ingest.WebResult{Status: ingest.WebStatusError, Error: "status 500"}
	_, _, err = server.ingestWebPageTool(context.Background(), nil, IngestWebPageInput{OrgID: "1", URL: "https://shop.example/x"})
	assert.EqualError(t, err, "status 500")

	_, _, err = server.ingestWebPageTool(context.Background(), nil, IngestWebPageInput{URL: "https://shop.example"})
	assert.Error(t, err)
}

func TestNewServer_Handler(t *testing.T) {
	server := NewServer(&fakeAssistant{}, &fakeWeb{})
	assert.NotNil(t, server.GetHandler())
}
