package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scentlog/internal/store"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the fragrances you own",
	}
	cmd.AddCommand(newCatalogAddCommand(ctx))
	cmd.AddCommand(newCatalogListCommand(ctx))
	cmd.AddCommand(newCatalogGoneCommand(ctx))
	return cmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var isDecant bool
	var acquired string

	cmd := &cobra.Command{
		Use:   "add <house> <name...>",
		Short: "Add a fragrance to your collection",
		Long: `Add records a fragrance you own. The first argument is the house, the rest
form the fragrance name. Adding the same fragrance as both a bottle and a
decant is allowed; adding the same form twice is not.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			house := args[0]
			name := strings.Join(args[1:], " ")
			return ctx.withStore(func(st *store.Store) error {
				item, err := st.AddToCollection(cmd.Context(), house, name, isDecant, acquired)
				if err != nil {
					return err
				}
				form := "bottle"
				if item.IsDecant {
					form = "decant"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s, id %d).\n",
					item.House, item.Name, form, item.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&isDecant, "decant", false, "Record this as a decant rather than a full bottle")
	cmd.Flags().StringVar(&acquired, "acquired", "", "Acquisition date (YYYY-MM-DD)")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var includeGone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				items, err := st.Collection(cmd.Context())
				if err != nil {
					return err
				}

				headers := []string{"ID", "House", "Name", "Decant", "Status", "Acquired", "Gone"}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					if !includeGone && item.Status != store.StatusHave {
						continue
					}
					status := item.Status
					if item.HadDetails != "" {
						status = fmt.Sprintf("%s (%s)", item.Status, item.HadDetails)
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.House,
						item.Name,
						yesNo(item.IsDecant),
						status,
						orDash(item.AcquiredDate),
						orDash(item.GoneDate),
					})
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Your collection is empty. Add fragrances with 'scentlog catalog add'.")
					return nil
				}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeGone, "all", false, "Include fragrances you no longer have")
	return cmd
}

func newCatalogGoneCommand(ctx *commandContext) *cobra.Command {
	var details string
	var date string

	cmd := &cobra.Command{
		Use:   "gone <id>",
		Short: "Mark a collection item as no longer owned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("expected a collection id, got %q", args[0])
			}
			return ctx.withStore(func(st *store.Store) error {
				if err := st.MarkGone(cmd.Context(), id, details, date); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked collection item %d as %s.\n", id, details)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&details, "details", "emptied", "Why it is gone: emptied, sold, gifted, or lost")
	cmd.Flags().StringVar(&date, "date", "", "When it was gone (YYYY-MM-DD)")
	return cmd
}
