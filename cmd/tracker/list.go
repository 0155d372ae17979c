package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			if len(expenses) == 0 {
				fmt.Println("No expenses recorded yet.")
				return nil
			}
			if limit > 0 && len(expenses) > limit {
				expenses = expenses[:limit]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, e := range expenses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.Date.Format("2006-01-02"), e.Amount.StringFixed(2), e.Category, e.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many expenses (0 = all)")

	return cmd
}
