// Package mcp exposes the assistant as an MCP tool over stdio so desktop
// agents can ask CRM questions.
package mcp

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/log"
)

const (
	toolName         = "crm_query"
	defaultSessionID = "mcp"
)

type Server struct {
	mcp *server.MCPServer
	in  io.Reader
	out io.Writer
}

func NewServer(handler core.ChatHandler) *Server {
	s := server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(false))
	s.AddTool(queryTool(), queryHandler(handler))

	return &Server{mcp: s, in: os.Stdin, out: os.Stdout}
}

func queryTool() mcp.Tool {
	return mcp.NewTool(toolName,
		mcp.WithDescription("Ask the CRM assistant a question in Hebrew or English, e.g. \"כמה לקוחות יש?\" or \"overdue tasks\". Lines starting with / run assistant commands such as /refresh."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
		mcp.WithString("session_id",
			mcp.Description("Conversation id; questions with the same id share loaded CRM data"),
		),
	)
}

func queryHandler(handler core.ChatHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("text must not be empty"), nil
		}

		sessionID := "mcp-" + req.GetString("session_id", defaultSessionID)
		msg := handler.Handle(ctx, sessionID, text)
		return mcp.NewToolResultText(msg.Content), nil
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving MCP over stdio")
	err := server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
