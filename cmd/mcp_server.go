package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/yuri91/swaystart/internal/config"
)

// mcpServer exposes the swaystart operations as MCP tools.
type mcpServer struct {
	mcp *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

func newMCPServer() *mcpServer {
	s := &mcpServer{}
	s.mcp = mcpserver.NewMCPServer(
		"swaystart",
		rootCmd.Version,
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("save_layout",
			mcp.WithDescription("Capture the current sway layout tree, with one swallow matcher per window, to a JSON document"),
			mcp.WithString("path", mcp.Description("File to write the layout document to (default: layout.json)")),
		),
		s.handleSave,
	)

	s.mcp.AddTool(
		mcp.NewTool("replay_layout",
			mcp.WithDescription("Rebuild a saved layout with placeholder windows and swap in matching real windows as they appear. Blocks until every placeholder is resolved."),
			mcp.WithString("path", mcp.Description("Layout document to replay"), mcp.Required()),
			mcp.WithBoolean("spawn", mcp.Description("Launch each saved view's application via the WM")),
		),
		s.handleReplay,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_workspaces",
			mcp.WithDescription("List live workspaces with their output and view counts"),
		),
		s.handleListWorkspaces,
	)
}

func (s *mcpServer) handleSave(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "layout.json")

	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	client, err := dialClient(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer client.Close()

	res, err := executeSave(client, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(res), nil
}

func (s *mcpServer) handleReplay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	spawn := boolParam(params, "spawn", false)
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := executeReplay(cfg, path, spawn)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(res), nil
}

func (s *mcpServer) handleListWorkspaces(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	client, err := dialClient(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer client.Close()

	res, err := executeList(client)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(res), nil
}

// yamlResult serializes a result struct to YAML for the MCP response.
func yamlResult(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}
