package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plancli",
	Short: "Plan Japan trips from the command line",
	Long: `plancli generates itineraries from the built-in attraction catalog
without a running API server.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newGenerateCmd(), newCatalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
