package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"greenlight/internal/api"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check pipeline database and corpus health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report, err := api.HealthCheck(cmd.Context(), api.HealthCheckRequest{
				Config:     cfg,
				ConfigPath: ctx.configPath,
			})
			if jsonOutput {
				if writeErr := writeJSON(cmd, report); writeErr != nil {
					return writeErr
				}
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:            %s\n", report.ConfigPath)
			fmt.Fprintf(out, "Database readable: %s\n", yesNo(report.DatabaseReadable))
			fmt.Fprintf(out, "Integrity check:   %s\n", yesNo(report.IntegrityCheck))
			fmt.Fprintf(out, "Knowledge corpus:  %s\n", yesNo(report.KnowledgeCorpus))
			fmt.Fprintf(out, "Productions:       %d\n", report.TotalProductions)

			if len(report.StatusCounts) > 0 {
				statuses := make([]string, 0, len(report.StatusCounts))
				for status := range report.StatusCounts {
					statuses = append(statuses, status)
				}
				sort.Strings(statuses)
				for _, status := range statuses {
					fmt.Fprintf(out, "  %-20s %d\n", statusLabel(status)+":", report.StatusCounts[status])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
