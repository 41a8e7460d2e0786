package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var status string
	var vertical string
	var limit int
	var offset int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List productions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			resp, err := api.ListProductions(cmd.Context(), api.ListProductionsRequest{
				Config:   cfg,
				Status:   status,
				Vertical: vertical,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			if len(resp.Items) == 0 {
				fmt.Fprintln(out, "No productions found")
				return nil
			}

			headers := []string{"ID", "Brief", "Title", "Type", "Status", "Score"}
			rows := make([][]string, 0, len(resp.Items))
			for _, item := range resp.Items {
				score := "-"
				if item.QualityScore != nil {
					score = fmt.Sprintf("%.1f", *item.QualityScore)
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", item.ID),
					item.BriefID,
					item.Title,
					item.VideoType,
					statusLabel(item.Status),
					score,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by lifecycle status")
	cmd.Flags().StringVar(&vertical, "vertical", "", "Filter by content vertical")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of productions to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of productions to skip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
