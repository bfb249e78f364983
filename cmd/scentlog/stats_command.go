package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"scentlog/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var mostWornLimit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize your wearing history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				stats, err := st.Stats(cmd.Context(), mostWornLimit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if stats.TotalLogs == 0 {
					fmt.Fprintln(out, "No wearings logged yet.")
					return nil
				}

				fmt.Fprintf(out, "%d wearings of %d fragrances between %s and %s.\n\n",
					stats.TotalLogs, stats.DistinctFragrances, stats.FirstLogDate, stats.LastLogDate)

				headers := []string{"Fragrance", "Wears", "Last worn", "Avg enjoy"}
				rows := make([][]string, 0, len(stats.MostWorn))
				for _, row := range stats.MostWorn {
					avg := "-"
					if row.AvgEnjoyment > 0 {
						avg = fmt.Sprintf("%.1f", row.AvgEnjoyment)
					}
					rows = append(rows, []string{
						row.FragranceFullName,
						strconv.Itoa(row.WearCount),
						row.LastWorn,
						avg,
					})
				}
				aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))

				printBreakdown(out, "By time of day", stats.ByTimeOfDay, []string{"day", "night"})
				printBreakdown(out, "By weather", stats.ByWeather, []string{"hot", "cold", "mild"})
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&mostWornLimit, "limit", 10, "How many most-worn fragrances to show")
	return cmd
}

func printBreakdown(out io.Writer, title string, counts map[string]int, order []string) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, key := range order {
		if count, ok := counts[key]; ok {
			fmt.Fprintf(out, "  %-6s %d\n", key, count)
		}
	}
	fmt.Fprintln(out)
}
