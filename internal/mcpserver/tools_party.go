package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPartyTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"arrive_party",
			mcp.WithDescription("Register an arriving party. It is seated immediately when a table fits, otherwise it joins the waitlist"),
			mcp.WithNumber("size", mcp.Required(), mcp.Description("Number of guests, at least 1")),
		),
		s.handleArriveParty,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"leave_party",
			mcp.WithDescription("Remove a seated or waiting party. Freed seats go to the waitlist"),
			mcp.WithString("party_id", mcp.Required(), mcp.Description("Party id returned by arrive_party")),
		),
		s.handleLeaveParty,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"lookup_party",
			mcp.WithDescription("Get a party's status and the table it sits at, if any"),
			mcp.WithString("party_id", mcp.Required(), mcp.Description("Party id")),
		),
		s.handleLookupParty,
	)
}

func (s *Server) handleArriveParty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size := request.GetInt("size", 0)
	if size < 1 {
		return toolError("invalid_request", "size must be at least 1"), nil
	}
	view, err := s.floor.Arrive(ctx, size)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{
		"party":      view,
		"queue_size": s.floor.Waitlist().Size,
	}), nil
}

func (s *Server) handleLeaveParty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partyID := strings.TrimSpace(request.GetString("party_id", ""))
	if partyID == "" {
		return toolError("invalid_request", "party_id is required"), nil
	}
	resp, err := s.floor.Leave(ctx, partyID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleLookupParty(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partyID := strings.TrimSpace(request.GetString("party_id", ""))
	if partyID == "" {
		return toolError("invalid_request", "party_id is required"), nil
	}
	view, err := s.floor.Party(partyID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(view), nil
}
