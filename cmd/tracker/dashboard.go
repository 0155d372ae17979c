package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rprog-06/Expense-Tracker/internal/anomaly"
	"github.com/Rprog-06/Expense-Tracker/internal/model"
	"github.com/Rprog-06/Expense-Tracker/internal/stats"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize spending and show anomaly alerts",
		Long: `Show total spending, per-category totals, remaining income, and up
to five spending alerts: unusually large expenses, weekly bill clusters,
and per-category weekly outliers.`,
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

			amounts := make([]decimal.Decimal, len(expenses))
			byCategory := make(map[model.Category]decimal.Decimal)
			for i, e := range expenses {
				amounts[i] = e.Amount
				byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
			}
			total := stats.Sum(amounts)

			fmt.Printf("Expenses: %d  Total: %s\n\n", len(expenses), total.StringFixed(2))

			fmt.Println("By category:")
			for _, c := range model.Categories() {
				if sum, ok := byCategory[c]; ok {
					fmt.Printf("  %-14s %s\n", c, sum.StringFixed(2))
				}
			}

			income, err := decimal.NewFromString(viper.GetString("income.monthly"))
			if err != nil {
				return fmt.Errorf("invalid income.monthly: %w", err)
			}
			if income.IsPositive() {
				remaining := income.Sub(total)
				fmt.Printf("\nIncome: %s  Remaining: %s\n", income.StringFixed(2), remaining.StringFixed(2))

				threshold, err := decimal.NewFromString(viper.GetString("income.warning_threshold"))
				if err != nil {
					return fmt.Errorf("invalid income.warning_threshold: %w", err)
				}
				if remaining.LessThan(threshold) {
					fmt.Printf("Warning: remaining income is below %s.\n", threshold.StringFixed(2))
				}
			}

			alerts := anomaly.NewScanner(scannerConfig()).Scan(expenses)
			if len(alerts) > 0 {
				fmt.Println("\nAlerts:")
				for _, a := range alerts {
					fmt.Printf("  - %s\n", a)
				}
			}

			return nil
		},
	}
}
