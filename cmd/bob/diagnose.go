package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/bob-diagnostic/internal/diagnostic"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// diagnoseOutput is the JSON output of the diagnose command
type diagnoseOutput struct {
	ProjectID     string               `json:"project_id"`
	Diagnosed     bool                 `json:"diagnosed"`
	Diagnostic    *types.Diagnostic    `json:"diagnostic,omitempty"`
	MissingFields []types.MissingField `json:"missing_fields"`
}

// relevanceOutput is the JSON output of the diagnose command with --relevance
type relevanceOutput struct {
	ProjectID  string                           `json:"project_id"`
	Challenges []diagnostic.ChallengeRelevance `json:"challenges"`
}

func newDiagnoseCmd(a *app) *cobra.Command {
	var (
		inputFile   string
		force       bool
		relevance   bool
		noHighlight bool
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose a project",
		Long: "Diagnose reads a {user, project} JSON request and writes the project's diagnostic: " +
			"its main challenges with their relevance, the overall sentence and the fields that would refine it. " +
			"Incomplete or already diagnosed projects are left as is unless --force is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequest(cmd.InOrStdin(), inputFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			contentDB, release, err := a.openContent(ctx)
			if err != nil {
				return err
			}
			defer release()
			engine := a.engine(contentDB)

			if relevance {
				var opts []diagnostic.RelevanceOption
				if noHighlight {
					opts = append(opts, diagnostic.WithoutFirstBlockerHighlight())
				}
				challenges, err := engine.MainChallengesRelevance(ctx, &req.User, &req.Project, opts...)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), relevanceOutput{ProjectID: req.Project.ProjectID, Challenges: challenges})
			}

			out := diagnoseOutput{
				ProjectID:     req.Project.ProjectID,
				Diagnostic:    req.Project.Diagnostic,
				MissingFields: []types.MissingField{},
			}
			if force || (!req.Project.IsIncomplete && req.Project.Diagnostic == nil) {
				diag, missing, err := engine.DiagnoseWithMissingFields(ctx, &req.User, &req.Project)
				if err != nil {
					return fmt.Errorf("failed to diagnose: %w", err)
				}
				out.Diagnosed = true
				out.Diagnostic = diag
				if missing != nil {
					out.MissingFields = missing
				}
			}

			if a.verbose {
				a.printer.PrintDiagnostic(out.Diagnostic)
				a.printer.PrintMissingFields(out.MissingFields)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to the request JSON file (default: stdin)")
	cmd.Flags().BoolVar(&force, "force", false, "Diagnose even incomplete or already diagnosed projects")
	cmd.Flags().BoolVar(&relevance, "relevance", false, "Only output the relevance of every main challenge")
	cmd.Flags().BoolVar(&noHighlight, "no-highlight", false, "With --relevance, keep the highlights authored in the content")
	return cmd
}
