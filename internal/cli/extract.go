package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var extractTopic string

var extractCmd = &cobra.Command{
	Use:   "extract [document]",
	Short: "Extract questions from an exam document",
	Long: `Parses numbered questions and their a) to d) options from a PDF (read with
pdftotext) or from a JSON file of pages of text lines, and prints them as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTopic, "topic", "t", "", "topic tag for every question")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	records, err := readRecords(cmd.Context(), args[0], extractTopic)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
