package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTopic string
	addLevel string
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Store a free-form question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTopic, "topic", "t", "", "question topic")
	addCmd.Flags().StringVarP(&addLevel, "level", "l", "", "difficulty level")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ix, closer, err := newIndex(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	e, err := ix.AddText(ctx, args[0], addTopic, addLevel)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}
	cmd.Printf("Stored question (%d dimensions)\n", e.Dim())
	return nil
}
