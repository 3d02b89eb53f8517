package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adripedrejon/examcorpus/extract"
	"github.com/adripedrejon/examcorpus/rank"
	"github.com/adripedrejon/examcorpus/store"
)

func ptr(s string) *string { return &s }

func examEntry(text string, answer *string) store.Entry {
	return store.Entry{
		Text:          text,
		Embedding:     []float32{1},
		Metadata:      map[string]any{store.MetaTopic: "Networks", store.MetaSource: "Exam 2020", store.MetaLevel: "exam"},
		CorrectAnswer: answer,
	}
}

func TestFormat_ExamEntryIsRebuilt(t *testing.T) {
	rec := extract.ExtractSpans([]string{"1. What is TCP?", "a) A protocol", "b) A cable"}, "")[0]
	e := examEntry(extract.Serialize(rec), ptr("a)"))

	got := Format(rank.Scored{Entry: e, Score: 0.98765})
	assert.Equal(t, "Question: What is TCP?\na) A protocol\nb) A cable\nCorrect Answer: a)\n", got.Text)
	assert.Equal(t, 0.988, got.Similarity)
	assert.Equal(t, e.Metadata, got.Metadata)
	require.NotNil(t, got.CorrectAnswer)
	assert.Equal(t, "a)", *got.CorrectAnswer)
}

func TestFormat_OptionsRenderedInLabelOrder(t *testing.T) {
	e := examEntry("Pick one\nc) third\na) first\n", ptr("c"))

	got := Format(rank.Scored{Entry: e, Score: 1})
	assert.Equal(t, "Question: Pick one\na) first\nc) third\nCorrect Answer: c\n", got.Text)
}

func TestFormat_EmptyAnswerOmitsAnswerLine(t *testing.T) {
	e := examEntry("Q?\na) yes\n", ptr(""))

	got := Format(rank.Scored{Entry: e})
	assert.Equal(t, "Question: Q?\na) yes\n", got.Text)
}

func TestFormat_PassThrough(t *testing.T) {
	generated := store.Entry{
		Text:     "Which protocol is connectionless?\na) UDP\nb) TCP",
		Metadata: map[string]any{store.MetaTopic: "Networks", store.MetaLevel: "basic"},
	}
	noAnswer := examEntry("What is TCP?\na) A protocol\n", nil)
	noMarkers := examEntry("  A free-form exam note without options  ", ptr("a)"))
	midLine := examEntry("Compare (a) and b) inline", ptr("b)"))

	for name, e := range map[string]store.Entry{
		"not exam":   generated,
		"no answer":  noAnswer,
		"no markers": noMarkers,
		"mid line":   midLine,
	} {
		t.Run(name, func(t *testing.T) {
			got := Format(rank.Scored{Entry: e, Score: 0.5})
			assert.Equal(t, e.Text, got.Text)
			assert.Equal(t, e.CorrectAnswer, got.CorrectAnswer)
		})
	}
}

func TestIsExamSourced(t *testing.T) {
	assert.True(t, IsExamSourced(examEntry("q", nil)))
	assert.True(t, IsExamSourced(store.Entry{Metadata: map[string]any{store.MetaSource: "exam 2018"}}))
	assert.False(t, IsExamSourced(store.Entry{Metadata: map[string]any{store.MetaSource: "generated"}}))
	assert.False(t, IsExamSourced(store.Entry{Metadata: map[string]any{store.MetaSource: 2020}}))
	assert.False(t, IsExamSourced(store.Entry{}))
}

func TestParseOptions_MultiLineContent(t *testing.T) {
	q, opts, ok := ParseOptions("Long question\na) first line\n   continues here\nB) second\n")
	require.True(t, ok)
	assert.Equal(t, "Long question", q)
	a, _ := opts.Get(extract.A).Text()
	assert.Equal(t, "first line\n   continues here", a)
	b, _ := opts.Get(extract.B).Text()
	assert.Equal(t, "second", b)
	assert.False(t, opts.Get(extract.C).IsPresent())
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.123, Round(0.12345))
	assert.Equal(t, 1.0, Round(0.99999))
	assert.Equal(t, -0.5, Round(-0.5))
	assert.Equal(t, 0.0, Round(0))
}

func TestFormatAll_JSON(t *testing.T) {
	results := FormatAll([]rank.Scored{
		{Entry: store.Entry{Text: "free", Metadata: map[string]any{"topic": "OS"}}, Score: 0.3333},
	})
	require.Len(t, results, 1)

	data, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"similarity":0.333,"text":"free","metadata":{"topic":"OS"},"correct_answer":null}]`, string(data))
	assert.Empty(t, FormatAll(nil))
}
