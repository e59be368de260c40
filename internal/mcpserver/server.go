package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"restaurant-seating/internal/app/floor"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	floor *floor.Service

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(svc *floor.Service) *Server {
	mcpSrv := server.NewMCPServer(
		"restaurant-seating",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		floor:      svc,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerPartyTools()
	s.registerFloorTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"table://{table_id}/state",
			"table_state",
			mcp.WithTemplateDescription("Occupancy of one table: capacity, occupied seats and seated party ids"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := request.Params.URI
			tableID, ok := tableIDFromURI(raw)
			if !ok {
				return nil, fmt.Errorf("invalid table resource uri %q", raw)
			}
			view, err := s.floor.Table(tableID)
			if err != nil {
				return nil, err
			}
			payload, err := json.Marshal(view)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			}, nil
		},
	)
}

func tableIDFromURI(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "table://") || !strings.HasSuffix(raw, "/state") {
		return "", false
	}
	tableID := strings.TrimSuffix(strings.TrimPrefix(raw, "table://"), "/state")
	if tableID == "" || strings.Contains(tableID, "/") {
		return "", false
	}
	return tableID, true
}
