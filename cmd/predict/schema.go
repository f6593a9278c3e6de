package main

import (
	"fmt"

	"energypredictor/internal/features"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the feature column order models must be trained on",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s (temp_above_avg > %g°C, low_temp < %g°C, high_income > %g)\n",
			features.SchemaName,
			features.TempAboveAvgThreshold,
			features.LowTempThreshold,
			features.HighIncomeThreshold,
		)
		for i, name := range features.Columns() {
			fmt.Fprintf(out, "%2d %s\n", i, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
