package cli

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adripedrejon/examcorpus/corpus"
	"github.com/adripedrejon/examcorpus/internal/logger"
)

var (
	ingestTopic string
	ingestCount int
	ingestSeed  uint64
	ingestYear  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [year|document]",
	Short: "Add exam questions to the store",
	Long: `Extracts the questions of an exam, optionally keeps a random sample of them,
guesses each correct answer and stores the embedded questions. A bare year
is looked up as <exam_dir>/<year>.pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTopic, "topic", "t", "", "keep questions whose topic contains this")
	ingestCmd.Flags().IntVarP(&ingestCount, "count", "n", 0, "number of questions to sample (0 = all)")
	ingestCmd.Flags().Uint64Var(&ingestSeed, "seed", 0, "sampling seed (0 = random)")
	ingestCmd.Flags().StringVar(&ingestYear, "year", "", "exam year recorded as the source (default: document name)")
	rootCmd.AddCommand(ingestCmd)
}

// examDocument resolves arg to a document path and the exam year.
func examDocument(arg string) (path, year string, err error) {
	if _, statErr := os.Stat(arg); statErr == nil {
		base := filepath.Base(arg)
		return arg, strings.TrimSuffix(base, filepath.Ext(base)), nil
	}
	path = filepath.Join(cfg.Extract.ExamDir, arg+".pdf")
	if _, statErr := os.Stat(path); statErr != nil {
		return "", "", fmt.Errorf("exam for year %s not found at %s", arg, path)
	}
	return path, arg, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path, year, err := examDocument(args[0])
	if err != nil {
		return err
	}
	if ingestYear != "" {
		year = ingestYear
	}

	logger.Section("Extract")
	records, err := readRecords(ctx, path, ingestTopic)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no questions found in %s", path)
	}

	ix, closer, err := newIndex(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := corpus.ExamOptions{Year: year, Topic: ingestTopic, Count: ingestCount}
	if ingestSeed != 0 {
		opts.Rand = rand.New(rand.NewPCG(ingestSeed, ingestSeed))
	}

	logger.Section("Ingest")
	entries, err := ix.IngestExam(ctx, records, opts)
	cmd.Printf("Stored %d questions from %s\n", len(entries), path)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}
