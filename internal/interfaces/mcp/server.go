package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// Assistant suggest and search operations exposed as tools
type Assistant interface {
	Suggest(ctx context.Context, req assist.SuggestRequest) (knowledge.SynthesisResult, error)
	Search(ctx context.Context, orgID, query string, k int) ([]knowledge.Match, error)
}

// WebIngester web page ingestion exposed as a tool
type WebIngester interface {
	IngestURL(ctx context.Context, orgID, url string) ingest.WebResult
}

// MCPServer MCP server over SSE
type MCPServer struct {
	server    *mcp.Server
	handler   http.Handler
	assistant Assistant
	web       WebIngester
	logger    *slog.Logger
}

// NewServer registers the tools and builds the SSE handler
func NewServer(assistant Assistant, web WebIngester) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "supportbrain",
			Version: "0.1.0",
		},
		nil,
	)

	mcpServer := &MCPServer{
		server:    server,
		assistant: assistant,
		web:       web,
		logger:    log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "suggest_reply",
		Description: `Draft a reply to a customer support ticket, grounded in past resolved tickets and live order data.

Parameters:
- org_id (string, required): Organization id
- ticket_id (string, optional): Ticket id; the ticket is fetched from the helpdesk when body or email is missing
- ticket_body (string, optional): Customer message
- customer_email (string, optional): Customer email for order status lookup

Returns: draft, confidence (0-1) and source references. Low-confidence drafts start with an UNCERTAIN marker.`,
	}, mcpServer.suggestReplyTool)

	mcp.AddTool(server, &mcp.Tool{
		Name: "search_knowledge",
		Description: `Search an organization's support knowledge base (past tickets, FAQ and policy pages).

Parameters:
- org_id (string, required): Organization id
- query (string, required): What to look for, in natural language
- limit (int, optional): Maximum number of results (1-10, default: 3)

Returns: matching chunks with source reference, similarity score, subject and text.`,
	}, mcpServer.searchKnowledgeTool)

	mcp.AddTool(server, &mcp.Tool{
		Name: "ingest_web_page",
		Description: `Add a public web page (FAQ, shipping or returns policy) to an organization's knowledge base.

Parameters:
- org_id (string, required): Organization id
- url (string, required): Page URL

Returns: status (success/skipped/error), page title and number of stored chunks.`,
	}, mcpServer.ingestWebPageTool)

	mcpServer.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil,
	)
	return mcpServer
}

// GetHandler HTTP handler mounted by the HTTP server
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
