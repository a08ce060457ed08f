// Package commands holds the khadija command line: the web server and the
// content maintenance tasks.
package commands

import (
	"khadija-recipes/cmd/config"
	"khadija-recipes/internal/i18n"
	"khadija-recipes/internal/utils"

	"github.com/spf13/cobra"
)

// openDB connects to the configured database. Tests swap it for an
// in-memory one.
var openDB = config.ConnectDB

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "khadija",
		Short: "Khadija Recipes content backend",
		Long: `Khadija Recipes content backend.

Serves the multilingual recipe and product pages and runs the content
maintenance tasks.

Commands:
  serve               Start the HTTP server
  migrate             Create or update the database schema
  import-legacy       Import recipes from a previous-site JSON export
  load-fixtures       Load fixture dumps, updating or skipping existing rows
  translate-messages  Machine-translate missing UI strings with DeepL
  reset-sequences     Reset sqlite id sequences of the recipe tables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.LoadConfig(); err != nil {
				return err
			}
			i18n.Configure(utils.GetLanguages(), utils.GetConfig("DEFAULT_LANGUAGE"))
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportLegacyCmd(),
		newLoadFixturesCmd(),
		newTranslateMessagesCmd(),
		newResetSequencesCmd(),
	)

	return root
}
