package commands

import (
	"fmt"
	"os"

	"khadija-recipes/pkg/fixture"
	"khadija-recipes/pkg/legacy"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

func newImportLegacyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-legacy <file>",
		Short: "Import recipes from a previous-site JSON export",
		Long: `Import recipes from the JSON export of the previous website.

Every blog page becomes a recipe with its ingredients and steps. Pages whose
title already exists are skipped, so the import can be repeated.

Examples:
  khadija import-legacy export.json
  khadija import-legacy export.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			records, err := legacy.LoadRecords(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			report, err := legacy.NewImporter(db).ImportAll(cmd.Context(), records, dryRun)
			if err != nil {
				return err
			}
			cmd.Printf("%d imported, %d skipped, %d failed\n", report.Imported, report.Skipped, report.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the recipes that would be imported")
	return cmd
}

func newLoadFixturesCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "load-fixtures <files...>",
		Short: "Load fixture dumps, updating or skipping existing rows",
		Long: `Load fixture dumps of units, ingredients, recipes, products and FAQs.

Rows that already exist are skipped unless --update is given. A record that
fails is reported and does not stop the rest of its file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			loader := fixture.NewLoader(db)

			var total fixture.LoadReport
			for _, path := range args {
				log.Infof("Loading %s", path)
				report, err := loadFixtureFile(cmd, loader, path, update)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				total.Add(report)
			}

			cmd.Printf("Done: %d created, %d updated, %d skipped, %d errors\n",
				total.Created, total.Updated, total.Skipped, total.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&update, "update", false, "Update rows that already exist instead of skipping them")
	return cmd
}

func loadFixtureFile(cmd *cobra.Command, loader fixture.Loader, path string, update bool) (fixture.LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return fixture.LoadReport{}, err
	}
	defer file.Close()

	records, err := fixture.LoadRecords(file)
	if err != nil {
		return fixture.LoadReport{}, err
	}
	return loader.Load(cmd.Context(), records, update)
}

func newResetSequencesCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "reset-sequences",
		Short: "Reset sqlite id sequences of the recipe tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			resets, err := fixture.ResetSequences(cmd.Context(), db, prefix)
			if err != nil {
				return err
			}
			cmd.Printf("%d sequences reset\n", len(resets))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", fixture.DefaultSequencePrefix, "Table name prefix")
	return cmd
}
