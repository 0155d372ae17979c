package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Rprog-06/Expense-Tracker/internal/common"
	"github.com/Rprog-06/Expense-Tracker/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <file>...",
		Short: "Import expenses from OFX/QFX bank exports",
		Long: `Import debit transactions from one or more OFX/QFX files. Credits
are skipped, duplicates already in the database are ignored, and each
imported expense is categorized from its description.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			parser := ofx.NewParser()
			classifier := newClassifier()

			var imported, failed int
			for _, path := range args {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}

				expenses, err := parser.ParseFile(ctx, file)
				_ = file.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}
				if len(expenses) == 0 {
					fmt.Printf("%s: no debit transactions found\n", path)
					continue
				}

				bar := progressbar.NewOptions(len(expenses),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription(fmt.Sprintf("Importing %s...", path)),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}))

				for _, e := range expenses {
					if e.Category == "" {
						e.Category = classifier.Classify(ctx, e.Description)
					}
					if err := store.SaveExpense(ctx, e); err != nil {
						if errors.Is(err, common.ErrInvalidExpense) {
							failed++
							_ = bar.Add(1)
							continue
						}
						return fmt.Errorf("failed to save expense from %s: %w", path, err)
					}
					imported++
					_ = bar.Add(1)
				}
			}

			fmt.Printf("Imported %d expenses", imported)
			if failed > 0 {
				fmt.Printf(" (%d skipped as malformed)", failed)
			}
			fmt.Println()
			return nil
		},
	}

	return cmd
}
