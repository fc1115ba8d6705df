package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/crmchat/internal/config"
	"github.com/sandevgo/crmchat/internal/service/installer"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure the data source and chat channels",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// run wizard (includes save step)
		state, err := installer.RunWizard(config.GetRuntimePath())
		if err != nil {
			return err
		}

		envPath := config.GetEnvPath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", config.GetRuntimePath())
		if state.Env.DBDriver == config.DriverSQLite {
			logger.Info().Msg("Load your data with 'crmchat import export.json', then run 'crmchat start'.")
			return nil
		}
		logger.Info().Msg("Installation complete! You can now run 'crmchat start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
