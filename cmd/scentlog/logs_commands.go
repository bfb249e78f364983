package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scentlog/internal/bulkimport"
	"scentlog/internal/catalog"
	"scentlog/internal/store"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Record and browse individual wearings",
	}
	cmd.AddCommand(newLogsAddCommand(ctx))
	cmd.AddCommand(newLogsListCommand(ctx))
	return cmd
}

func newLogsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		dateFlag      string
		timeOfDayFlag string
		weatherFlag   string
		enjoymentFlag int
		notesFlag     string
		goneFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "add <fragrance...>",
		Short: "Log a single wearing",
		Long: `Add logs one wearing of a fragrance. The name is matched fuzzily against
your still-owned collection, so "aventus" finds Creed Aventus. The date
defaults to today.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger("logs")
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logDate := time.Now().Format("2006-01-02")
			if dateFlag != "" {
				parsed, err := parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
				logDate = parsed.Format("2006-01-02")
			}
			if timeOfDayFlag != "" {
				if _, ok := bulkimport.ParseTimeOfDay(timeOfDayFlag); !ok {
					return fmt.Errorf("time must be day or night, got %q", timeOfDayFlag)
				}
			}
			if weatherFlag != "" {
				if _, ok := bulkimport.ParseWeather(weatherFlag); !ok {
					return fmt.Errorf("weather must be hot, cold, or mild, got %q", weatherFlag)
				}
			}

			name := strings.Join(args, " ")
			return ctx.withStore(func(st *store.Store) error {
				options, err := st.LogOptions(cmd.Context())
				if err != nil {
					return err
				}
				matcher := catalog.NewMatcher(cfg.Import.MatchThreshold)
				match := matcher.Match(name, options)
				if match == nil {
					return fmt.Errorf("no fragrance in your collection matches %q", name)
				}

				logID, err := st.CreateLog(cmd.Context(), store.NewLog{
					FragranceID:     match.Entry.FragranceID,
					UserFragranceID: match.Entry.UserFragranceID,
					LogDate:         logDate,
					TimeOfDay:       strings.ToLower(timeOfDayFlag),
					Weather:         strings.ToLower(weatherFlag),
					Enjoyment:       enjoymentFlag,
					Notes:           notesFlag,
					MarkGone:        goneFlag,
				})
				if err != nil {
					return err
				}

				logger.Info("logged wearing",
					slog.Int64("log_id", logID),
					slog.String("fragrance", match.Entry.FullName()),
					slog.String("date", logDate))
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s (matched %.0f%%).\n",
					match.Entry.Label(), logDate, match.Confidence*100)
				if goneFlag {
					fmt.Fprintln(cmd.OutOrStdout(), "Bottle marked as emptied.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Wearing date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&timeOfDayFlag, "time", "", "Time of day: day or night")
	cmd.Flags().StringVar(&weatherFlag, "weather", "", "Weather: hot, cold, or mild")
	cmd.Flags().IntVar(&enjoymentFlag, "enjoyment", 0, "Enjoyment rating 1-10")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-text notes")
	cmd.Flags().BoolVar(&goneFlag, "gone", false, "This wearing emptied the bottle")
	return cmd
}

func newLogsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent wearings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				logs, err := st.ListLogs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(logs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No wearings logged yet.")
					return nil
				}

				headers := []string{"Date", "Fragrance", "Time", "Weather", "Enjoy", "Notes"}
				rows := make([][]string, 0, len(logs))
				for _, row := range logs {
					enjoyment := "-"
					if row.Enjoyment > 0 {
						enjoyment = strconv.Itoa(row.Enjoyment)
					}
					rows = append(rows, []string{
						row.LogDate,
						row.FragranceFullName,
						orDash(row.TimeOfDay),
						orDash(row.Weather),
						enjoyment,
						orDash(row.Notes),
					})
				}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows to show; 0 shows everything")
	return cmd
}
