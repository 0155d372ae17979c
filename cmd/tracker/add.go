package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Rprog-06/Expense-Tracker/internal/classify"
	"github.com/Rprog-06/Expense-Tracker/internal/common"
	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

func addCmd() *cobra.Command {
	var (
		amountStr   string
		dateStr     string
		categoryStr string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record an expense",
		Long: `Record a single expense. When --category is omitted the description
is classified automatically and the chosen category is printed along with
how it was decided.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := args[0]

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return common.NewUserError(
					fmt.Sprintf("Amount %q is not a number. Try something like --amount 12.50.", amountStr),
					fmt.Errorf("%w: %q", common.ErrInvalidAmount, amountStr))
			}
			if amount.IsNegative() {
				return common.NewUserError(
					"Amounts must not be negative.",
					fmt.Errorf("%w: negative amount %s", common.ErrInvalidAmount, amount))
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return common.NewUserError(
						fmt.Sprintf("Date %q is not valid. Use YYYY-MM-DD.", dateStr),
						fmt.Errorf("%w: %q", common.ErrInvalidDate, dateStr))
				}
			}

			expense := model.Expense{
				ID:          uuid.New().String(),
				Description: description,
				Amount:      amount,
				Date:        date,
			}

			source := classify.Source("")
			if categoryStr != "" {
				category, ok := model.ParseCategory(categoryStr)
				if !ok {
					return common.NewUserError(
						fmt.Sprintf("Category %q is not recognized. Known categories: %v.", categoryStr, model.Categories()),
						fmt.Errorf("unknown category %q", categoryStr))
				}
				expense.Category = category
			} else {
				expense.Category, source = newClassifier().ClassifyWithSource(ctx, description)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to save expense: %w", err)
			}

			if source != "" {
				fmt.Printf("Recorded %s for %q in %s (%s)\n",
					expense.Amount.StringFixed(2), description, expense.Category, source)
			} else {
				fmt.Printf("Recorded %s for %q in %s\n",
					expense.Amount.StringFixed(2), description, expense.Category)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "expense amount (required)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "expense date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&categoryStr, "category", "c", "", "category (default: classified from the description)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
