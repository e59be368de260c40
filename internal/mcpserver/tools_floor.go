package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerFloorTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_waitlist",
			mcp.WithDescription("List waiting parties in arrival order"),
		),
		s.handleGetWaitlist,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_tables",
			mcp.WithDescription("List every table with capacity, occupied seats and seated parties"),
		),
		s.handleListTables,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_floor_summary",
			mcp.WithDescription("Seat totals, seated parties and queue size"),
		),
		s.handleFloorSummary,
	)
}

func (s *Server) handleGetWaitlist(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.floor.Waitlist()), nil
}

func (s *Server) handleListTables(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.floor.Tables()), nil
}

func (s *Server) handleFloorSummary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.floor.Summary()), nil
}
