package main

import (
	"fmt"
	"time"

	"energypredictor/internal/features"
	"energypredictor/internal/model"
	"energypredictor/internal/service"

	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Print the derived feature vector",
	Long:  "Derive and print the ordered feature vector for the given household attributes without running a model.",
	RunE:  runFeatures,
}

var (
	featuresRequest model.PredictRequest
	featuresJSON    bool
)

func init() {
	bindInput(featuresCmd, &featuresRequest)
	featuresCmd.Flags().BoolVar(&featuresJSON, "json", false, "Print as a JSON object")

	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	resp, err := service.NewCollector(time.Local).Features(&featuresRequest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if featuresJSON {
		return writeJSON(out, resp)
	}
	for i, name := range features.Columns() {
		fmt.Fprintf(out, "%2d  %-24s %g\n", i, name, resp.Features[i])
	}
	return nil
}
