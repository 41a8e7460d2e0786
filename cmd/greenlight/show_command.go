package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <brief-id>",
		Short: "Show a production and its latest gate results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			view, err := api.ShowProduction(cmd.Context(), api.ShowProductionRequest{
				Config:  cfg,
				BriefID: args[0],
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "%s  (production %d)\n", view.BriefID, view.ID)
			fmt.Fprintf(out, "  Title:     %s\n", view.Title)
			fmt.Fprintf(out, "  Type:      %s\n", view.VideoType)
			if view.Vertical != "" {
				fmt.Fprintf(out, "  Vertical:  %s\n", view.Vertical)
			}
			fmt.Fprintf(out, "  Status:    %s\n", statusLabel(view.Status))
			if view.QualityScore != nil {
				fmt.Fprintf(out, "  Score:     %.1f\n", *view.QualityScore)
			}
			if len(view.QualityFlags) > 0 {
				fmt.Fprintf(out, "  Flags:     %s\n", strings.Join(view.QualityFlags, ", "))
			}

			artefactOrder := []struct{ key, label string }{
				{"claimTable", "Claim Table"},
				{"evidencePack", "Evidence Pack"},
				{"disclaimerPlan", "Disclaimer Plan"},
				{"approvalRecord", "Approval Record"},
				{"knowledgeContract", "Knowledge Contract"},
			}
			var present, missing []string
			for _, a := range artefactOrder {
				if view.Artefacts[a.key] {
					present = append(present, a.label)
				} else {
					missing = append(missing, a.label)
				}
			}
			fmt.Fprintf(out, "  Artefacts: %s\n", strings.Join(present, ", "))
			if len(missing) > 0 {
				fmt.Fprintf(out, "  Missing:   %s\n", strings.Join(missing, ", "))
			}

			if len(view.GateResults) > 0 {
				headers := []string{"Gate", "Verdict", "Measured"}
				rows := make([][]string, 0, len(view.GateResults))
				for _, result := range view.GateResults {
					rows = append(rows, []string{
						gateLabel(result.Gate),
						colorVerdict(result.Verdict, colorize),
						fmt.Sprintf("%.1f", result.Measured),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
