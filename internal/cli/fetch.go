package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchkit/benchkit/internal/dataset"
	"github.com/benchkit/benchkit/internal/hub"
	"github.com/benchkit/benchkit/internal/style"
)

var (
	// Fetch command flags
	fetchLimit   = 100
	fetchDataDir = "data"
	fetchTimeout = 10 * time.Minute
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [datasets...]",
	Short: "Fetch and normalize benchmark datasets",
	Long: `Fetch benchmark datasets from the Hugging Face datasets-server, truncate
each to a fixed sample count, normalize the fields and write one JSON file
per dataset into the data directory.

Supported datasets:
  piqa        Physical commonsense reasoning (A/B choice)
  hellaswag   Commonsense sentence completion (4-way choice)
  boolq       Yes/No question answering
  gsm8k       Grade school math word problems

Examples:
  benchkit fetch                     # Fetch all datasets, 100 examples each
  benchkit fetch piqa gsm8k          # Fetch only PIQA and GSM8K
  benchkit fetch --limit 500         # Fetch 500 examples per dataset
  benchkit fetch --data-dir ./bench  # Write files somewhere else
  benchkit fetch --output json       # JSON summary for CI/CD`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runFetch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVarP(&fetchLimit, "limit", "n", 100, "maximum examples per dataset")
	fetchCmd.Flags().StringVarP(&fetchDataDir, "data-dir", "d", "data", "output directory for dataset files")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 10*time.Minute, "overall fetch timeout")
}

// FetchResult represents the result of fetching one dataset
type FetchResult struct {
	Dataset  string        `json:"dataset" yaml:"dataset"`
	File     string        `json:"file" yaml:"file"`
	Records  int           `json:"records" yaml:"records"`
	Duration time.Duration `json:"duration_ms" yaml:"duration_ms"`
}

// FetchSummary represents the summary of all fetch results
type FetchSummary struct {
	Total    int           `json:"total" yaml:"total"`
	Records  int           `json:"records" yaml:"records"`
	Duration time.Duration `json:"total_duration_ms" yaml:"total_duration_ms"`
	Results  []FetchResult `json:"results" yaml:"results"`
}

func runFetch(cmd *cobra.Command, args []string) {
	start := time.Now()

	selected, err := resolveDatasets(args)
	if err != nil {
		style.Error(cmd.ErrOrStderr(), err.Error())
		os.Exit(1)
	}

	client, err := hub.NewClient(hub.DefaultConfig())
	if err != nil {
		style.Error(cmd.ErrOrStderr(), fmt.Sprintf("Failed to create hub client: %v", err))
		os.Exit(1)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	results := make([]FetchResult, 0, len(selected))
	records := 0
	for _, ds := range selected {
		result, err := fetchDataset(ctx, cmd, client, ds)
		if err != nil {
			// No partial output for the failed dataset; files written for
			// earlier datasets stay on disk.
			style.Error(cmd.ErrOrStderr(), fmt.Sprintf("Failed to fetch %s: %v", ds.Name(), err))
			os.Exit(1)
		}
		results = append(results, *result)
		records += result.Records
	}

	summary := FetchSummary{
		Total:    len(results),
		Records:  records,
		Duration: time.Since(start),
		Results:  results,
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), summary)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), summary)
	default:
		if !viper.GetBool("quiet") {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFetched %d datasets (%d examples) in %v\n",
				summary.Total, summary.Records, summary.Duration.Round(time.Millisecond))
		}
	}
}

func fetchDataset(ctx context.Context, cmd *cobra.Command, client *hub.Client, ds dataset.Dataset) (*FetchResult, error) {
	start := time.Now()

	var sp style.Spinner
	if !viper.GetBool("quiet") && viper.GetString("output") == "text" {
		sp = style.NewSpinner(cmd.OutOrStdout())
		sp.SetSuffix(fmt.Sprintf(" Fetching %s (%s)...", ds.Name(), ds.Remote()))
		sp.Start()
	}

	records, count, err := ds.Normalize(ctx, client.Iterate(ds.Remote()), fetchLimit)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return nil, err
	}

	path, err := dataset.WriteFile(fetchDataDir, ds.Name(), records)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("dataset", ds.Name()).
		Int("records", count).
		Str("path", path).
		Msg("Dataset written")

	if !viper.GetBool("quiet") && viper.GetString("output") == "text" {
		style.Success(cmd.OutOrStdout(), fmt.Sprintf("Saved %d %s examples to %s", count, ds.Name(), path))
	}

	return &FetchResult{
		Dataset:  ds.Name(),
		File:     path,
		Records:  count,
		Duration: time.Since(start),
	}, nil
}

func resolveDatasets(args []string) ([]dataset.Dataset, error) {
	if len(args) == 0 {
		return dataset.All(), nil
	}

	selected := make([]dataset.Dataset, 0, len(args))
	for _, name := range args {
		ds, ok := dataset.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q (available: %s)", name, strings.Join(dataset.Names(), ", "))
		}
		selected = append(selected, ds)
	}
	return selected, nil
}
