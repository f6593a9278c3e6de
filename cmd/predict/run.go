package main

import (
	"context"
	"fmt"

	"energypredictor/internal/features"
	"energypredictor/internal/model"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Predict energy usage for one household",
	Long:  "Derive the feature vector for the given household attributes and print the predicted energy usage.",
	RunE:  runPredict,
}

var (
	runRequest model.PredictRequest
	runModels  modelFlags
	runJSON    bool
)

func init() {
	bindInput(runCmd, &runRequest)
	runModels.register(runCmd)
	runCmd.Flags().StringVarP(&runRequest.Model, "model", "m", "", "Model name (default: the manifest default)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the full prediction result as JSON")

	rootCmd.AddCommand(runCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	svc, err := runModels.service(ctx)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	result, err := svc.Predict(ctx, &runRequest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if runJSON {
		return writeJSON(out, result)
	}

	fmt.Fprintf(out, "Predicted energy usage (%s): %s\n", result.Model, result.Display)
	fmt.Fprintf(out, "  season:                 %s\n", result.Season)
	fmt.Fprintf(out, "  income per person:      %.2f\n", result.Features[features.ColIncomePerPerson])
	fmt.Fprintf(out, "  square feet per person: %.2f\n", result.Features[features.ColSquareFeetPerPerson])
	return nil
}
