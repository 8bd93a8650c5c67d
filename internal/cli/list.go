package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchkit/benchkit/internal/dataset"
	"github.com/benchkit/benchkit/internal/style"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported benchmark datasets",
	Long:  `Display the benchmark datasets benchkit knows how to fetch, with their Hugging Face sources.`,
	Example: `
  benchkit list                # Table of supported datasets
  benchkit list --output json  # Machine-readable listing`,
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// DatasetListing describes one supported benchmark
type DatasetListing struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Source      string `json:"source" yaml:"source"`
}

func runList(cmd *cobra.Command) {
	listings := make([]DatasetListing, 0, len(dataset.All()))
	for _, ds := range dataset.All() {
		listings = append(listings, DatasetListing{
			Name:        ds.Name(),
			Description: ds.Description(),
			Source:      ds.Remote().String(),
		})
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), listings)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), listings)
	default:
		rows := make([][]string, 0, len(listings))
		for _, l := range listings {
			rows = append(rows, []string{l.Name, l.Description, l.Source})
		}
		printTable(cmd.OutOrStdout(), []string{"NAME", "DESCRIPTION", "SOURCE"}, rows)
	}
}
