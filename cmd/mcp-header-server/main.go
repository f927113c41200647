package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cexll/fileheader/internal/config"
	"github.com/cexll/fileheader/internal/engine"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MCP Header Server] Failed to load configuration: %v", err)
	}

	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("[MCP Header Server] Failed to initialize engine: %v", err)
	}

	log.Println("[MCP Header Server] Starting file header MCP Server v1.0.0")

	// 2. Create MCP server
	server := newServer(e)

	// 3. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[MCP Header Server] Received shutdown signal")
		cancel()
	}()

	// 4. Start server with stdio transport
	log.Println("[MCP Header Server] Starting on stdio transport...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("[MCP Header Server] Server error: %v", err)
	}
	log.Println("[MCP Header Server] Server stopped gracefully")
}

func newServer(e *engine.Engine) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "file-header-server",
		Version: "v1.0.0",
	}, nil)

	h := &ToolHandler{Engine: e}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "insert_file_header",
		Description: "Prepend a metadata header comment (author, email, dates) to a source file",
	}, h.HandleInsert)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_file_header",
		Description: "Refresh LastEditors/LastEditTime in a file's existing header, inserting one when auto-insert is enabled",
	}, h.HandleUpdate)
	log.Println("[MCP Header Server] Registered tools: insert_file_header, update_file_header")

	return server
}
