package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models in the manifest",
	RunE:  runListModels,
}

var listModels modelFlags

func init() {
	listModels.register(modelsCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runListModels(cmd *cobra.Command, _ []string) error {
	reg, err := listModels.open(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tFEATURES\tDEFAULT")
	for _, m := range reg.List() {
		def := ""
		if m.Default {
			def = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", m.Name, m.Kind, m.Features, def)
	}
	return w.Flush()
}
