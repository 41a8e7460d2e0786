package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "add <brief.json>",
		Short: "Import a production brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			view, err := api.ImportProduction(cmd.Context(), api.ImportProductionRequest{
				Config:    cfg,
				BriefPath: args[0],
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as production %d (%s)\n", view.BriefID, view.ID, statusLabel(view.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
