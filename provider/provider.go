package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/adripedrejon/examcorpus/extract"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Guesser proposes the correct option for a question. The returned text is
// the raw model reply; callers normalise it with extract.NormalizeAnswer.
type Guesser interface {
	Guess(ctx context.Context, question string, opts extract.Options) (string, error)
}

// GuessPrompt builds the instruction sent to a chat model. Absent options are
// listed with empty text so the model always sees four labels.
func GuessPrompt(question string, opts extract.Options) string {
	var b strings.Builder
	b.WriteString("Given the following multiple choice question, choose the most appropriate answer. ")
	b.WriteString("Respond ONLY with the letter (a, b, c, or d).\n\nQuestion:\n")
	b.WriteString(question)
	b.WriteString("\n\nOptions:\n")
	for _, l := range extract.Labels {
		text, _ := opts.Get(l).Text()
		fmt.Fprintf(&b, "%s) %s\n", l, text)
	}
	b.WriteString("\nAnswer:")
	return b.String()
}
