package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/bob-diagnostic/internal/content"
)

func newImportContentCmd(a *app) *cobra.Command {
	var (
		collection string
		inputFile  string
	)

	cmd := &cobra.Command{
		Use:   "import-content",
		Short: "Replace a content collection in the database",
		Long:  "Import-content replaces every record of a collection with the JSON array read from a file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(content.AllCollections, collection) {
				return fmt.Errorf("unknown collection %q (known: %v)", collection, content.AllCollections)
			}

			data, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			records, err := decodeCollection(data)
			if err != nil {
				return fmt.Errorf("invalid collection file %s: %w", inputFile, err)
			}

			ctx := cmd.Context()
			database, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			previous, err := database.GetLatestImport(ctx, collection)
			if err != nil {
				return err
			}
			if previous != nil {
				slog.Info("replacing previous import",
					"collection", collection,
					"import_id", previous.ImportID,
					"imported_at", previous.ImportedAt)
			}

			result, err := database.ReplaceCollection(ctx, collection, records)
			if err != nil {
				return err
			}
			slog.Info("collection imported",
				"collection", collection,
				"import_id", result.ImportID,
				"deleted", result.Deleted,
				"inserted", result.Inserted)
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Name of the collection to replace (required)")
	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to a JSON array of records (required)")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newCollectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the content collections stored in the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			database, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			stats, err := database.ListCollections(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
}
