package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newOverrideCommand(ctx *commandContext) *cobra.Command {
	var approver string
	var justification string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "override <brief-id>",
		Short: "Manually promote a qa_failed production to ready_for_publish",
		Long: `Record a manual override for a production that failed its gate run.

Overrides are rejected when a strict gate (Safety, Visual Role) failed. The
override is documented in the production's Approval Record and audit trail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			view, err := api.RecordOverride(cmd.Context(), api.RecordOverrideRequest{
				Config:        cfg,
				BriefID:       args[0],
				Approver:      approver,
				Justification: justification,
				Logger:        ctx.logger(),
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Override recorded for %s by %s; production is now %s\n", view.BriefID, approver, statusLabel(view.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&approver, "approver", "", "Identified approver for the override (required)")
	cmd.Flags().StringVar(&justification, "justification", "", "Why the failure is acceptable")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	_ = cmd.MarkFlagRequired("approver")
	return cmd
}
