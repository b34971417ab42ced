package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/ingest"
)

// SuggestReplyInput suggest_reply tool input
type SuggestReplyInput struct {
	OrgID         string `json:"org_id" jsonschema:"Organization id whose knowledge base is searched (required)"`
	TicketID      string `json:"ticket_id,omitempty" jsonschema:"Ticket id, used to fetch the ticket when body or email is missing"`
	TicketBody    string `json:"ticket_body,omitempty" jsonschema:"Customer message to answer"`
	CustomerEmail string `json:"customer_email,omitempty" jsonschema:"Customer email, used for live order status"`
}

// SuggestReplyOutput suggest_reply tool output
type SuggestReplyOutput struct {
	Draft            string   `json:"draft" jsonschema:"Suggested reply draft"`
	Confidence       float64  `json:"confidence" jsonschema:"Confidence between 0 and 1"`
	SourceReferences []string `json:"source_references" jsonschema:"Tickets or pages the draft is grounded on"`
}

// suggestReplyTool drafts a reply through the suggest path
func (s *MCPServer) suggestReplyTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SuggestReplyInput,
) (*mcp.CallToolResult, SuggestReplyOutput, error) {
	output := SuggestReplyOutput{SourceReferences: []string{}}

	if strings.TrimSpace(input.OrgID) == "" {
		return nil, output, fmt.Errorf("org_id is required")
	}

	result, err := s.assistant.Suggest(ctx, assist.SuggestRequest{
		OrgID:         input.OrgID,
		TicketID:      input.TicketID,
		TicketBody:    input.TicketBody,
		CustomerEmail: input.CustomerEmail,
	})
	if err != nil {
		s.logger.Warn("suggest_reply failed", "org_id", input.OrgID, "ticket_id", input.TicketID, "error", err)
		return nil, output, err
	}

	output.Draft = result.Draft
	output.Confidence = result.Confidence
	if result.SourceReferences != nil {
		output.SourceReferences = result.SourceReferences
	}
	return nil, output, nil
}

// SearchKnowledgeInput search_knowledge tool input
type SearchKnowledgeInput struct {
	OrgID string `json:"org_id" jsonschema:"Organization id (required)"`
	Query string `json:"query" jsonschema:"Natural language search query (required)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results, defaults to 3, max 10"`
}

// SearchKnowledgeOutput search_knowledge tool output
type SearchKnowledgeOutput struct {
	Results    []*KnowledgeResult `json:"results" jsonschema:"Matching knowledge chunks, best first"`
	TotalCount int                `json:"total_count" jsonschema:"Number of results"`
}

// KnowledgeResult one matching chunk
type KnowledgeResult struct {
	Reference string  `json:"reference" jsonschema:"Ticket number, URL or id of the source"`
	Score     float64 `json:"score" jsonschema:"Raw similarity score"`
	Subject   string  `json:"subject,omitempty" jsonschema:"Ticket subject or page title"`
	Text      string  `json:"text" jsonschema:"Chunk text"`
}

// searchKnowledgeTool raw retrieval over the org namespace
func (s *MCPServer) searchKnowledgeTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchKnowledgeInput,
) (*mcp.CallToolResult, SearchKnowledgeOutput, error) {
	output := SearchKnowledgeOutput{Results: []*KnowledgeResult{}}

	if strings.TrimSpace(input.OrgID) == "" {
		return nil, output, fmt.Errorf("org_id is required")
	}
	if strings.TrimSpace(input.Query) == "" {
		return nil, output, fmt.Errorf("query is required")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 3
	}
	if limit > 10 {
		limit = 10
	}

	matches, err := s.assistant.Search(ctx, input.OrgID, input.Query, limit)
	if err != nil {
		return nil, output, fmt.Errorf("search failed: %w", err)
	}

	for _, m := range matches {
		output.Results = append(output.Results, &KnowledgeResult{
			Reference: m.Reference(),
			Score:     m.Score,
			Subject:   m.Chunk.Metadata.Subject,
			Text:      m.Chunk.Text,
		})
	}
	output.TotalCount = len(output.Results)
	return nil, output, nil
}

// IngestWebPageInput ingest_web_page tool input
type IngestWebPageInput struct {
	OrgID string `json:"org_id" jsonschema:"Organization id (required)"`
	URL   string `json:"url" jsonschema:"Public page URL, e.g. a FAQ or shipping policy (required)"`
}

// ingestWebPageTool adds one web page to the knowledge base
func (s *MCPServer) ingestWebPageTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input IngestWebPageInput,
) (*mcp.CallToolResult, ingest.WebResult, error) {
	if strings.TrimSpace(input.OrgID) == "" || strings.TrimSpace(input.URL) == "" {
		return nil, ingest.WebResult{URL: input.URL}, fmt.Errorf("org_id and url are required")
	}

	result := s.web.IngestURL(ctx, input.OrgID, input.URL)
	if result.Status == ingest.WebStatusError {
		return nil, result, errors.New(result.Error)
	}
	return nil, result, nil
}
