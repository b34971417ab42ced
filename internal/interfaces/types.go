package interfaces

import (
	"github.com/supportbrain/backend/internal/interfaces/http"
	"github.com/supportbrain/backend/internal/interfaces/mcp"
)

// HTTPServer HTTP server alias
type HTTPServer = http.HTTPServer

// MCPServer MCP server alias
type MCPServer = mcp.MCPServer
