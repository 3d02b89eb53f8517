package store

import (
	"github.com/adripedrejon/examcorpus/extract"
)

// Metadata keys written by the corpus service.
const (
	MetaTopic  = "topic"
	MetaSource = "source"
	MetaLevel  = "level"
	MetaBatch  = "batch"
)

// Entry is one persisted question with its embedding.
//
// Options is nil for entries that did not come from an exam document.
// CorrectAnswer holds a bare label or the "<label>)" form.
type Entry struct {
	Text          string           `json:"text"`
	Embedding     []float32        `json:"embedding"`
	Metadata      map[string]any   `json:"metadata"`
	Options       *extract.Options `json:"options"`
	CorrectAnswer *string          `json:"correct_answer"`
}

// Dim returns the embedding length.
func (e Entry) Dim() int { return len(e.Embedding) }

// MetaString returns metadata[key] when it is a string.
func (e Entry) MetaString(key string) string {
	if e.Metadata == nil {
		return ""
	}
	s, _ := e.Metadata[key].(string)
	return s
}
