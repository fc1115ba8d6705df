package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sandevgo/crmchat/internal/config"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/storage/sqlite"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var replaceData bool

var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Load a CRM JSON export into the local database",
	Long:  `Reads {"clients": [...], "projects": [...], ...} and writes the rows into the local sqlite database used by the sqlite3 driver.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), os.Stderr)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg := config.NewAppConfig(ctx)
		if appCfg.DBDriver != config.DriverSQLite {
			return fmt.Errorf("import only supports the %s driver, got %s", config.DriverSQLite, appCfg.DBDriver)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		var bar *progressbar.ProgressBar
		importer := sqlite.NewImporter(db).WithProgress(func(done, total int) {
			if bar == nil {
				bar = newImportBar(total)
			}
			_ = bar.Set(done)
		})

		counts, err := importer.Import(ctx, f, replaceData)
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			color.New(color.FgYellow).Fprintln(out, "⚠ no CRM collections found in", args[0])
			return nil
		}
		for _, coll := range core.Collections {
			if n, ok := counts[coll]; ok {
				color.New(color.FgGreen).Fprintf(out, "✓ %-14s %d\n", coll, n)
			}
		}
		log.FromCtx(ctx).Info().Str("path", appCfg.GetDatabasePath()).Msg("import complete")
		return nil
	},
}

func newImportBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	importCmd.Flags().BoolVar(&replaceData, "replace", false, "delete existing rows of imported collections first")
	rootCmd.AddCommand(importCmd)
}
