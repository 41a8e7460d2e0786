package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history <brief-id>",
		Short: "Show a production's audit trail, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			events, err := api.AuditHistory(cmd.Context(), api.AuditHistoryRequest{
				Config:  cfg,
				BriefID: args[0],
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, events)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No audit events recorded")
				return nil
			}

			headers := []string{"Seq", "Kind", "Actor", "Recorded", "Payload"}
			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					fmt.Sprintf("%d", event.Seq),
					event.Kind,
					event.Actor,
					event.CreatedAt,
					event.Payload,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
