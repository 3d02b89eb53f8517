package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize(t *testing.T) {
	records := ExtractSpans([]string{"1. What is TCP?", "a) A protocol", "c) A cable"}, "")

	assert.Equal(t, "What is TCP?\na) A protocol\nc) A cable\n", Serialize(records[0]))
}

func TestSerialize_NoOptions(t *testing.T) {
	assert.Equal(t, "Lonely?\n", Serialize(Record{Question: "Lonely?"}))
}

func TestNormalizeAnswer(t *testing.T) {
	tests := map[string]string{
		"c) las variables en memoria": "c)",
		"B":                           "b)",
		" d. ":                        "d)",
		"(a)":                         "a)",
		"a:":                          "a)",
		"e) nope":                     UnknownAnswer,
		"":                            UnknownAnswer,
		"I think b":                   UnknownAnswer,
		"do":                          UnknownAnswer,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeAnswer(in), in)
	}
}

func TestFilter(t *testing.T) {
	records := append(ExtractSpans([]string{"1. Q1"}, "Computer Networks"), ExtractSpans([]string{"1. Q2"}, "Databases")...)
	records = append(records, ExtractSpans([]string{"1. Q3"}, "")...)

	assert.Len(t, Filter(records, ""), 3)
	got := Filter(records, "network")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Q1", got[0].Question)
	}
	assert.Empty(t, Filter(records, "security"))
}

func TestWithTopic(t *testing.T) {
	records := ExtractSpans([]string{"1. Q1", "2. Q2"}, "")
	tagged := WithTopic(records, "OS")

	for _, r := range tagged {
		assert.Equal(t, "OS", r.TopicOrEmpty())
	}
	for _, r := range records {
		assert.Nil(t, r.Topic)
	}
	assert.Nil(t, WithTopic(tagged, "")[0].Topic)
}
