package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newAdvanceCommand(ctx *commandContext) *cobra.Command {
	var actor string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "advance <brief-id> <status>",
		Short: "Move a production to a new lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			view, err := api.AdvanceStatus(cmd.Context(), api.AdvanceStatusRequest{
				Config:  cfg,
				BriefID: args[0],
				Target:  args[1],
				Actor:   actor,
				Logger:  ctx.logger(),
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", view.BriefID, statusLabel(view.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Actor recorded on the transition")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
