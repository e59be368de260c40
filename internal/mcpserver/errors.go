package mcpserver

import (
	"errors"
	"fmt"

	"restaurant-seating/internal/app/floor"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

func mapDomainError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return toolError("internal_error", "unknown error")
	case errors.Is(err, floor.ErrInvalidRequest):
		return toolError("invalid_request", err.Error())
	case errors.Is(err, floor.ErrPartyTooLarge):
		return toolError("party_too_large", err.Error())
	case errors.Is(err, floor.ErrPartyNotFound):
		return toolError("party_not_found", err.Error())
	case errors.Is(err, floor.ErrTableNotFound):
		return toolError("table_not_found", err.Error())
	default:
		return toolError("internal_error", err.Error())
	}
}
