package main

import (
	"os"
	"strings"

	"github.com/sandevgo/crmchat/internal/transport/cli"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:     "ask [question]",
	Short:   "Ask a single question and exit",
	Example: `  crmchat ask "כמה לקוחות יש?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), os.Stderr)
		defer flushLog()

		_, dispatcher, services := newCore(ctx)
		defer closeAll(ctx, services)

		cli.Ask(ctx, dispatcher, cmd.OutOrStdout(), strings.Join(args, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
