package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
)

func newCatalogCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the attraction catalog by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(planner.ActivityType(category), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list this category")

	return cmd
}

func runCatalog(category planner.ActivityType, w io.Writer) error {
	if category != "" && !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}

	grouped := planner.DefaultCatalog().ByCategory()
	for _, c := range planner.ActivityTypes {
		if category != "" && c != category {
			continue
		}
		activities := grouped[c]
		if len(activities) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s\n", c)
		for _, a := range activities {
			fmt.Fprintf(w, "  %-16s %-40s ¥%-6.0f %s\n", a.ID, a.Title, a.Price, a.Location.Prefecture)
		}
	}
	return nil
}
