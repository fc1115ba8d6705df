package main

import (
	"os"
	"os/signal"

	mcptransport "github.com/sandevgo/crmchat/internal/transport/mcp"
	"github.com/sandevgo/crmchat/pkg/srv"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant as an MCP tool over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol
		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		_, dispatcher, services := newCore(ctx)
		services = append(services, srv.StopOnReturn(mcptransport.NewServer(dispatcher), stop))

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
