package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/bob-diagnostic/internal/maintenance"
	"github.com/jonathan/bob-diagnostic/internal/scoring"
)

func newCheckContentCmd(a *app) *cobra.Command {
	var listModels bool

	cmd := &cobra.Command{
		Use:   "check-content",
		Short: "Validate the content collections",
		Long: "Check-content validates every content record, makes sure every filter and relevance model " +
			"exists and that templates only use known variables. It fails when an error is found.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := scoring.DefaultRegistry()
			if listModels {
				for _, id := range registry.ModelIDs() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
						return err
					}
				}
				return nil
			}

			ctx := cmd.Context()
			contentDB, release, err := a.openContent(ctx)
			if err != nil {
				return err
			}
			defer release()

			report, err := maintenance.CheckContent(ctx, contentDB, registry)
			if err != nil {
				return err
			}
			if a.verbose {
				a.printer.PrintViolations(report.Violations)
			}
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("content has %d errors", report.Count(maintenance.SeverityError))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listModels, "list-models", false, "List the scoring model ids instead of checking content")
	return cmd
}
