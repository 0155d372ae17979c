package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rprog-06/Expense-Tracker/internal/classify"
	"github.com/Rprog-06/Expense-Tracker/internal/config"
)

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the local classifier from recorded expenses",
		Long: `Build the local text classifier from every categorized expense in
the database and write it to the configured model path. Once the model
exists it is used automatically when a keyword match fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			examples, err := store.LabeledExamples(ctx)
			if err != nil {
				return fmt.Errorf("failed to load training examples: %w", err)
			}
			if len(examples) == 0 {
				fmt.Println("No categorized expenses to train from. Record some expenses first.")
				return nil
			}

			model, err := classify.TrainModel(examples)
			if err != nil {
				return fmt.Errorf("failed to train model: %w", err)
			}

			modelPath := config.ExpandPath(viper.GetString("classifier.model_path"))
			if err := model.Save(modelPath); err != nil {
				return fmt.Errorf("failed to save model to %s: %w", modelPath, err)
			}

			fmt.Printf("Trained on %d expenses, model written to %s\n", len(examples), modelPath)
			return nil
		},
	}
}
