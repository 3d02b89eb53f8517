// Package format turns ranked entries into display results. Exam-sourced
// entries with a known answer are rebuilt as a question block with labelled
// options and the answer; every other entry is shown as stored.
package format

import (
	"math"
	"regexp"
	"strings"

	"github.com/adripedrejon/examcorpus/extract"
	"github.com/adripedrejon/examcorpus/rank"
	"github.com/adripedrejon/examcorpus/store"
)

// ExamMarker identifies exam-sourced entries in the "source" metadata value,
// for example "Exam 2020".
const ExamMarker = "Exam"

// Result is one formatted search hit.
type Result struct {
	Similarity    float64        `json:"similarity"`
	Text          string         `json:"text"`
	Metadata      map[string]any `json:"metadata"`
	CorrectAnswer *string        `json:"correct_answer"`
}

var optionMarker = regexp.MustCompile(`(?m)^[ \t]*([a-dA-D])\)[ \t]*`)

// IsExamSourced reports whether e was ingested from an exam document.
func IsExamSourced(e store.Entry) bool {
	return strings.Contains(strings.ToLower(e.MetaString(store.MetaSource)), strings.ToLower(ExamMarker))
}

// Format renders one ranked entry.
func Format(s rank.Scored) Result {
	r := Result{
		Similarity:    Round(s.Score),
		Text:          s.Entry.Text,
		Metadata:      s.Entry.Metadata,
		CorrectAnswer: s.Entry.CorrectAnswer,
	}
	if !IsExamSourced(s.Entry) || s.Entry.CorrectAnswer == nil {
		return r
	}
	if text, ok := rebuild(s.Entry.Text, *s.Entry.CorrectAnswer); ok {
		r.Text = text
	}
	return r
}

// FormatAll renders results in order.
func FormatAll(scored []rank.Scored) []Result {
	out := make([]Result, len(scored))
	for i, s := range scored {
		out[i] = Format(s)
	}
	return out
}

// Round rounds a similarity to three decimals.
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// rebuild splits text at the first option marker. Each option runs to the
// next marker or the end of text. ok is false when no marker is found.
func rebuild(text, answer string) (string, bool) {
	question, opts, ok := ParseOptions(text)
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteByte('\n')
	for _, l := range extract.Labels {
		content, present := opts.Get(l).Text()
		if !present {
			continue
		}
		b.WriteString(l.String())
		b.WriteString(") ")
		b.WriteString(content)
		b.WriteByte('\n')
	}
	if answer != "" {
		b.WriteString("Correct Answer: ")
		b.WriteString(answer)
		b.WriteByte('\n')
	}
	return b.String(), true
}

// ParseOptions recovers the question and options from text written by
// extract.Serialize. Markers only count at the start of a line. A label seen
// twice keeps its last content.
func ParseOptions(text string) (question string, opts extract.Options, ok bool) {
	marks := optionMarker.FindAllStringSubmatchIndex(text, -1)
	if len(marks) == 0 {
		return "", opts, false
	}
	question = strings.TrimSpace(text[:marks[0][0]])
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		l, _ := extract.ParseLabel(text[m[2]:m[3]])
		opts.Set(l, strings.TrimSpace(text[m[1]:end]))
	}
	return question, opts, true
}
