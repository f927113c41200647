package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/cexll/fileheader/internal/engine"
	"github.com/cexll/fileheader/internal/filehost"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FileParams defines the input parameters for both tools
type FileParams struct {
	Path     string `json:"path" jsonschema:"Path of the source file to edit"`
	Language string `json:"language,omitempty" jsonschema:"Language id such as go or python; derived from the extension when empty"`
}

// ToolHandler serves the header tools against files on disk
type ToolHandler struct {
	Engine *engine.Engine
	// Apply writes results back; nil means filehost.Apply.
	Apply func(engine.Document, engine.Result) error
}

type toolReport struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	Action  string `json:"action"`
	Warning string `json:"warning,omitempty"`
}

// HandleInsert handles the insert_file_header tool call
func (h *ToolHandler) HandleInsert(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params FileParams,
) (*mcp.CallToolResult, any, error) {
	log.Printf("[MCP Header Server] Received insert_file_header request for %s", params.Path)
	return h.handle(ctx, params, h.Engine.Insert)
}

// HandleUpdate handles the update_file_header tool call
func (h *ToolHandler) HandleUpdate(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params FileParams,
) (*mcp.CallToolResult, any, error) {
	log.Printf("[MCP Header Server] Received update_file_header request for %s", params.Path)
	return h.handle(ctx, params, h.Engine.WillSave)
}

func (h *ToolHandler) handle(
	ctx context.Context,
	params FileParams,
	op func(context.Context, engine.Document) (engine.Result, error),
) (*mcp.CallToolResult, any, error) {
	// 1. Validate parameters
	if params.Path == "" {
		return nil, nil, fmt.Errorf("path parameter is required")
	}

	// 2. Read the document
	doc, err := filehost.Open(params.Path, params.Language)
	if err != nil {
		return errorResult(err), nil, nil
	}

	// 3. Run the engine
	res, err := op(ctx, doc)
	if err != nil && !errors.Is(err, engine.ErrUnsupportedLanguage) {
		log.Printf("[MCP Header Server] Engine failed for %s: %v", doc.URI, err)
		return errorResult(err), nil, nil
	}
	if err != nil {
		return errorResult(fmt.Errorf("%s", res.Warning)), nil, nil
	}

	// 4. Apply the edit
	apply := h.Apply
	if apply == nil {
		apply = filehost.Apply
	}
	if err := apply(doc, res); err != nil {
		log.Printf("[MCP Header Server] Failed to write %s: %v", doc.URI, err)
		h.Engine.Abandon(doc.URI, res)
		return errorResult(err), nil, nil
	}

	// 5. Construct success response
	report, err := json.MarshalIndent(toolReport{
		Success: true,
		Path:    doc.URI,
		Action:  string(res.Action),
		Warning: res.Warning,
	}, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}

	log.Printf("[MCP Header Server] %s: %s", doc.URI, res.Action)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(report)},
		},
	}, nil, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Error: %v", err),
			},
		},
		IsError: true,
	}
}
