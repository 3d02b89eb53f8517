package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adripedrejon/examcorpus/format"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find stored questions similar to a query",
	Long: `Embeds the query and ranks every stored question by cosine similarity.
Exam questions with a known answer are shown with their options and answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = search.top_k)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ix, closer, err := newIndex(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	results, err := ix.Search(ctx, args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchText(cmd, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []format.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []format.Result) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}
	for i, r := range results {
		topic, _ := r.Metadata["topic"].(string)
		cmd.Printf("[%d] %.3f %s\n", i+1, r.Similarity, topic)
		cmd.Println(strings.TrimRight(r.Text, "\n"))
		cmd.Println()
	}
}
