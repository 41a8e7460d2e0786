package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var commit bool
	var actor string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run <brief-id>",
		Short: "Run the quality gates for a production",
		Long: `Run all seven quality gates against a production's current snapshot.

Without --commit this is a dry run: results and audit events are recorded but
the production's status never moves. With --commit, a production in qa status
transitions to ready_for_publish or qa_failed based on the aggregate verdict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			run, err := api.RunGates(cmd.Context(), api.RunGatesRequest{
				Config:  cfg,
				BriefID: args[0],
				Commit:  commit,
				Actor:   actor,
				Logger:  ctx.logger(),
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			headers := []string{"Gate", "Verdict", "Measured", "Warn", "Fail", "Details"}
			rows := make([][]string, 0, len(run.Results))
			for _, result := range run.Results {
				rows = append(rows, []string{
					gateLabel(result.Gate),
					colorVerdict(result.Verdict, colorize),
					fmt.Sprintf("%.1f", result.Measured),
					fmt.Sprintf("%.0f", result.WarnThreshold),
					fmt.Sprintf("%.0f", result.FailThreshold),
					strings.Join(result.Details, "; "),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}))
			fmt.Fprintf(out, "Aggregate: %s  Quality score: %.1f\n", colorVerdict(run.Aggregate, colorize), run.QualityScore)
			if len(run.Flags) > 0 {
				fmt.Fprintf(out, "Flags: %s\n", strings.Join(run.Flags, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, "Apply the qa outcome transition after the run")
	cmd.Flags().StringVar(&actor, "actor", "", "Actor recorded on the committed transition")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
