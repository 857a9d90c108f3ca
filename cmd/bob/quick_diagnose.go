package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuickDiagnoseCmd(a *app) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "quick-diagnose",
		Short: "Comment on the profile fields a user just filled in",
		Long: "Quick-diagnose reads a {user, project, diff} JSON request and writes the short comments " +
			"shown next to the fields listed in the diff.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequest(cmd.InOrStdin(), inputFile)
			if err != nil {
				return err
			}
			if req.Diff == nil {
				return fmt.Errorf("invalid request: quick-diagnose requires a diff")
			}

			ctx := cmd.Context()
			contentDB, release, err := a.openContent(ctx)
			if err != nil {
				return err
			}
			defer release()

			quick := a.engine(contentDB).QuickDiagnose(ctx, &req.User, &req.Project, req.Diff)
			if a.verbose {
				a.printer.PrintQuickDiagnostic(quick)
			}
			return writeJSON(cmd.OutOrStdout(), quick)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to the request JSON file (default: stdin)")
	return cmd
}
